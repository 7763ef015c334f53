package cep

import (
	"github.com/Masterminds/semver/v3"

	"github.com/civic-interconnect/cep-core/pkg/versioning"
)

// CheckSchemaVersion reports UnsupportedVersion when declared is not
// major-version compatible with SchemaVersion. It uses semver/v3's caret
// range (accepts any MINOR.PATCH within the same MAJOR) because a host
// negotiating a version window needs range semantics the teacher's own
// pkg/versioning comparator does not provide; pkg/versioning is still used
// below for exact-equality display formatting of SchemaVersion.
func CheckSchemaVersion(declared string) error {
	constraint, err := semver.NewConstraint("^" + SchemaVersion)
	if err != nil {
		return NewConfiguration("invalid schema version constraint: %v", err)
	}
	v, err := semver.NewVersion(declared)
	if err != nil {
		return NewUnsupportedVersion(declared)
	}
	if !constraint.Check(v) {
		return NewUnsupportedVersion(declared)
	}
	return nil
}

// DisplaySchemaVersion renders SchemaVersion through the teacher's own
// SemVer parser/comparator, used wherever a human-facing display string
// (rather than a range-aware compatibility check) is needed.
func DisplaySchemaVersion() string {
	v, err := versioning.Parse(SchemaVersion)
	if err != nil {
		return SchemaVersion
	}
	return v.String()
}
