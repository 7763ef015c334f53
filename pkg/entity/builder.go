package entity

import (
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/cepvalidate"
	"github.com/civic-interconnect/cep-core/pkg/identifier"
	"github.com/civic-interconnect/cep-core/pkg/localize"
	"github.com/civic-interconnect/cep-core/pkg/normalize"
	"github.com/civic-interconnect/cep-core/pkg/record"
	"github.com/civic-interconnect/cep-core/pkg/snfei"
)

var log = slog.With("component", "entity")

// defaultEffectiveDate is used when neither a registration date nor an
// explicit effective date is supplied (§4.5 step 7).
const defaultEffectiveDate = "1900-01-01"

// Input is the flat raw-field input to the Entity builder.
type Input struct {
	LegalName        string
	CountryCode      string
	Jurisdiction     string // optional, falls back to CountryCode
	Address          string // optional
	RegistrationDate string // optional, raw
	EntityTypeRaw    string // optional, free text

	LEI               string
	SAMUEI            string
	CanadianBN        string
	AdditionalSchemes []identifier.AdditionalScheme

	NAICS string // optional

	AttestorID            string
	AttestationTimestamp  string // raw, parsed via canonical.ParseTimestamp
	ProofType             string // optional
	ProofValue            string // optional
	VerificationMethodURI string // optional
	ProofPurpose          string // optional
	AnchorURI             string // optional

	SchemaVersion      string // optional, defaults to cep.SchemaVersion
	RevisionNumber     int    // optional, defaults to 1
	PreviousRecordHash string // optional
	CorrelationID      string // optional, auto-generated if empty

	// EffectiveDate overrides the registration-date-or-default effective
	// date used for the default ACTIVE status.
	EffectiveDate string // optional raw date

	// ExtraFields carries any caller-supplied fields that do not map to a
	// canonical Entity field. Each key produces a warning, never a silent
	// drop (§4.5).
	ExtraFields map[string]string

	// Schema, if set, is compiled host-supplied JSON Schema that the raw
	// input is validated against before any other check. Nil skips this
	// step entirely. Excluded from the document cepvalidate marshals.
	Schema *jsonschema.Schema `json:"-"`
}

// Builder constructs validated Entity records, applying localization
// (§4.2) before C1 normalization (§4.1) and C4 identity generation (§4.3).
type Builder struct {
	registry *localize.Registry
}

// NewBuilder constructs a Builder backed by the given localization
// registry. A nil registry falls back to localize.DefaultRegistry().
func NewBuilder(registry *localize.Registry) *Builder {
	if registry == nil {
		registry = localize.DefaultRegistry()
	}
	return &Builder{registry: registry}
}

// Build assembles and validates an Entity from raw input, returning
// non-fatal observations alongside the successful record.
func (b *Builder) Build(in Input) (*Entity, []string, error) {
	var warnings []string

	if err := cepvalidate.Validate(in.Schema, in); err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(in.LegalName) == "" {
		return nil, nil, cep.NewMissingField("legalName")
	}
	if strings.TrimSpace(in.CountryCode) == "" {
		return nil, nil, cep.NewMissingField("countryCode")
	}
	if strings.TrimSpace(in.AttestorID) == "" {
		return nil, nil, cep.NewMissingField("attestorId")
	}
	if strings.TrimSpace(in.AttestationTimestamp) == "" {
		return nil, nil, cep.NewMissingField("attestationTimestamp")
	}

	jurisdiction := in.Jurisdiction
	if strings.TrimSpace(jurisdiction) == "" {
		jurisdiction = in.CountryCode
	}

	cfg, err := b.registry.Resolve(jurisdiction)
	if err != nil {
		warnings = append(warnings, "localization: "+err.Error())
		log.Warn("localization resolve failed, falling through", "jurisdiction", jurisdiction, "error", err)
		cfg = localize.Empty(jurisdiction)
	}

	typeCode, fellThrough := NormalizeType(in.EntityTypeRaw)
	if fellThrough {
		warnings = append(warnings, "entityType: raw value \""+in.EntityTypeRaw+"\" did not match the enumerated set; defaulted to \"other\"")
	}

	act := localize.Activation{Jurisdiction: jurisdiction, EntityType: string(typeCode)}
	localizedName := cfg.ApplyToName(in.LegalName, act)

	var addrPtr *string
	if strings.TrimSpace(in.Address) != "" {
		addrPtr = &in.Address
	}
	var datePtr *string
	if strings.TrimSpace(in.RegistrationDate) != "" {
		datePtr = &in.RegistrationDate
	}

	var leiPtr, samPtr *string
	if strings.TrimSpace(in.LEI) != "" {
		leiPtr = &in.LEI
	}
	if strings.TrimSpace(in.SAMUEI) != "" {
		samPtr = &in.SAMUEI
	}

	result := snfei.Generate(snfei.Request{
		LegalName:        localizedName,
		CountryCode:      in.CountryCode,
		Address:          addrPtr,
		RegistrationDate: datePtr,
		LEI:              leiPtr,
		SAMUEI:           samPtr,
	})

	ids, idWarnings, err := assembleIdentifiers(in, result.SNFEI)
	warnings = append(warnings, idWarnings...)
	if err != nil {
		return nil, warnings, err
	}

	attestationTS, err := canonical.ParseTimestamp(in.AttestationTimestamp)
	if err != nil {
		return nil, warnings, err
	}
	attestation := buildAttestation(in, attestationTS)

	schemaVersion := in.SchemaVersion
	if schemaVersion == "" {
		schemaVersion = cep.SchemaVersion
	}
	if err := cep.CheckSchemaVersion(schemaVersion); err != nil {
		return nil, warnings, err
	}

	revision := in.RevisionNumber
	if revision == 0 {
		revision = 1
	}
	if revision < 1 {
		return nil, warnings, cep.NewRevisionChain("revisionNumber must be >= 1, got %d", revision)
	}
	if in.PreviousRecordHash != "" && revision < 2 {
		return nil, warnings, cep.NewRevisionChain("previousRecordHash present requires revisionNumber >= 2, got %d", revision)
	}
	if in.PreviousRecordHash != "" {
		if err := canonical.ValidateHash(in.PreviousRecordHash); err != nil {
			return nil, warnings, err
		}
	}

	effectiveRaw := in.EffectiveDate
	if effectiveRaw == "" {
		effectiveRaw = in.RegistrationDate
	}
	if effectiveRaw == "" {
		effectiveRaw = defaultEffectiveDate
	}
	effectiveTS, err := canonical.ParseTimestamp(effectiveRaw)
	if err != nil {
		return nil, warnings, err
	}

	var normalizedName string
	nameResult := normalize.LegalName(localizedName, normalize.LegalNameOptions{RemoveStopWords: true})
	if nameResult != "" {
		normalizedName = nameResult
	}

	correlationID := in.CorrelationID
	if correlationID == "" {
		correlationID = cep.NewCorrelationID()
	}

	for field := range in.ExtraFields {
		warnings = append(warnings, "unrecognized input field: "+field)
	}

	e := &Entity{
		SchemaVersion:      schemaVersion,
		RevisionNumber:     revision,
		PreviousRecordHash: in.PreviousRecordHash,
		CorrelationID:      correlationID,
		Attestation:        attestation,
		LegalName:          in.LegalName,
		NormalizedName:     normalizedName,
		Jurisdiction:       jurisdiction,
		EntityType:         typeCode,
		EntityTypeURI:      TypeURI(typeCode),
		Identifiers:        ids,
		Status: Status{
			StatusCode:         StatusActive,
			EffectiveTimestamp: effectiveTS,
		},
		NAICS: in.NAICS,
		ResolutionConfidence: &ResolutionConfidence{
			Tier:       result.Tier,
			Confidence: result.Confidence,
			FieldsUsed: result.FieldsUsed,
		},
		VerifiableID: "cep-entity:snfei:" + result.SNFEI,
	}

	for _, w := range warnings {
		log.Warn(w)
	}

	return e, warnings, nil
}

func assembleIdentifiers(in Input, snfeiHex string) (identifier.Identifiers, []string, error) {
	var warnings []string
	var ids identifier.Identifiers

	if in.LEI != "" {
		lei, err := identifier.NewLEI(in.LEI)
		if err != nil {
			return identifier.Identifiers{}, warnings, err
		}
		ids.LEI = &lei
	}
	if in.SAMUEI != "" {
		sam, err := identifier.NewSAMUEI(in.SAMUEI)
		if err != nil {
			return identifier.Identifiers{}, warnings, err
		}
		ids.SAMUEI = &sam
	}
	if in.CanadianBN != "" {
		bn, err := identifier.NewCanadianBN(in.CanadianBN)
		if err != nil {
			return identifier.Identifiers{}, warnings, err
		}
		ids.CanadianBN = &bn
	}
	sn, err := identifier.NewSNFEI(snfeiHex)
	if err != nil {
		return identifier.Identifiers{}, warnings, err
	}
	ids.SNFEI = &sn
	ids.AdditionalSchemes = in.AdditionalSchemes

	if !ids.HasAny() {
		return identifier.Identifiers{}, warnings, cep.NewMissingField("identifiers")
	}
	return ids, warnings, nil
}

func buildAttestation(in Input, ts canonical.Timestamp) record.Attestation {
	a := record.ManualAttestation(in.AttestorID, ts)
	if in.ProofType != "" {
		a.ProofType = in.ProofType
	}
	if in.ProofValue != "" {
		a.ProofValue = in.ProofValue
	}
	if in.VerificationMethodURI != "" {
		a.VerificationMethodURI = in.VerificationMethodURI
	}
	if in.ProofPurpose != "" {
		a.ProofPurpose = in.ProofPurpose
	}
	if in.AnchorURI != "" {
		a.AnchorURI = in.AnchorURI
	}
	return a
}
