package cep

import "github.com/google/uuid"

// NewCorrelationID returns a fresh revision-chain correlation id. It is
// host-side bookkeeping only — never part of a record's canonical fields —
// used to track a lineage of revisions of the same logical record across a
// caller's own storage, independent of the content-addressed hash chain.
func NewCorrelationID() string {
	return uuid.NewString()
}
