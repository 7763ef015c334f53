package exchange

import (
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/cepvalidate"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

var log = slog.With("component", "exchange")

// ValueTypeInKind marks an ExchangeValue as non-monetary; InKindDescription
// becomes required when this value type is used.
const ValueTypeInKind = "cep-value-type:in_kind"

// Input is the flat raw-field input to the Exchange builder.
type Input struct {
	TypeRaw string

	SourceEntityID          string
	SourceRoleURI           string
	SourceAccountIdentifier string

	RecipientEntityID          string
	RecipientRoleURI           string
	RecipientAccountIdentifier string

	Amount            float64
	CurrencyCode      string
	ValueTypeURI      string
	InKindDescription string

	OccurredDate string // raw
	Status       string // optional, defaults to StatusActive

	FundingChainTag        string
	UltimateSourceEntityID string
	IntermediaryEntities   []string
	ParentExchangeID       string

	CFDANumber         string
	NAICSCode          string
	GTASAccountCode    string
	LocalCategoryCode  string
	LocalCategoryLabel string

	SourceReferences []record.SourceReference

	AttestorID            string
	AttestationTimestamp  string
	ProofType             string
	ProofValue            string
	VerificationMethodURI string
	ProofPurpose          string
	AnchorURI             string

	SchemaVersion      string
	RevisionNumber     int
	PreviousRecordHash string
	CorrelationID      string

	ExtraFields map[string]string

	// Schema, if set, is compiled host-supplied JSON Schema that the raw
	// input is validated against before any other check. Nil skips this
	// step entirely. Excluded from the document cepvalidate marshals.
	Schema *jsonschema.Schema `json:"-"`
}

// Builder constructs validated Exchange records.
type Builder struct{}

// NewBuilder constructs an Exchange Builder.
func NewBuilder() *Builder { return &Builder{} }

// Build assembles and validates an Exchange from raw input.
func (b *Builder) Build(in Input) (*Exchange, []string, error) {
	var warnings []string

	if err := cepvalidate.Validate(in.Schema, in); err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(in.SourceEntityID) == "" {
		return nil, nil, cep.NewMissingField("sourceParty.entityId")
	}
	if strings.TrimSpace(in.RecipientEntityID) == "" {
		return nil, nil, cep.NewMissingField("recipientParty.entityId")
	}
	if strings.TrimSpace(in.CurrencyCode) == "" {
		return nil, nil, cep.NewMissingField("value.currencyCode")
	}
	if strings.TrimSpace(in.OccurredDate) == "" {
		return nil, nil, cep.NewMissingField("occurredTimestamp")
	}
	if strings.TrimSpace(in.AttestorID) == "" {
		return nil, nil, cep.NewMissingField("attestorId")
	}
	if strings.TrimSpace(in.AttestationTimestamp) == "" {
		return nil, nil, cep.NewMissingField("attestationTimestamp")
	}

	valueTypeURI := in.ValueTypeURI
	if valueTypeURI == "" {
		valueTypeURI = "cep-value-type:monetary"
	}
	if valueTypeURI == ValueTypeInKind && strings.TrimSpace(in.InKindDescription) == "" {
		return nil, nil, cep.NewBuilderError("inKindDescription is required when valueTypeUri is %q", ValueTypeInKind)
	}

	occurredTS, err := canonical.ParseTimestamp(in.OccurredDate)
	if err != nil {
		return nil, warnings, err
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}

	var provenance *ProvenanceChain
	chain := ProvenanceChain{
		FundingChainTag:        in.FundingChainTag,
		UltimateSourceEntityID: in.UltimateSourceEntityID,
		IntermediaryEntities:   in.IntermediaryEntities,
		ParentExchangeID:       in.ParentExchangeID,
	}
	if chain.HasAny() {
		provenance = &chain
	}

	var categorization *ExchangeCategorization
	cat := ExchangeCategorization{
		CFDANumber:         in.CFDANumber,
		NAICSCode:          in.NAICSCode,
		GTASAccountCode:    in.GTASAccountCode,
		LocalCategoryCode:  in.LocalCategoryCode,
		LocalCategoryLabel: in.LocalCategoryLabel,
	}
	if cat.HasAny() {
		categorization = &cat
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

	correlationID := in.CorrelationID
	if correlationID == "" {
		correlationID = cep.NewCorrelationID()
	}

	for field := range in.ExtraFields {
		warnings = append(warnings, "unrecognized input field: "+field)
	}

	e := &Exchange{
		SchemaVersion:      schemaVersion,
		RevisionNumber:     revision,
		PreviousRecordHash: in.PreviousRecordHash,
		CorrelationID:      correlationID,
		Attestation:        attestation,
		TypeURI:            TypeURI(in.TypeRaw),
		Source: ExchangeParty{
			EntityID:          in.SourceEntityID,
			RoleURI:           in.SourceRoleURI,
			AccountIdentifier: in.SourceAccountIdentifier,
		},
		Recipient: ExchangeParty{
			EntityID:          in.RecipientEntityID,
			RoleURI:           in.RecipientRoleURI,
			AccountIdentifier: in.RecipientAccountIdentifier,
		},
		Value: ExchangeValue{
			Amount:            in.Amount,
			CurrencyCode:      in.CurrencyCode,
			ValueTypeURI:      valueTypeURI,
			InKindDescription: in.InKindDescription,
		},
		Occurred:         occurredTS,
		Status:           status,
		Provenance:       provenance,
		Categorization:   categorization,
		SourceReferences: in.SourceReferences,
	}

	for _, w := range warnings {
		log.Warn(w)
	}

	return e, warnings, nil
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
