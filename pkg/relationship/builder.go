package relationship

import (
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/cep"
	"github.com/civic-interconnect/cep-core/pkg/cepvalidate"
	"github.com/civic-interconnect/cep-core/pkg/record"
)

var log = slog.With("component", "relationship")

// PartyInput is one raw {entityId, roleUri} pair.
type PartyInput struct {
	EntityID string
	RoleURI  string
}

// MemberInput is one raw multilateral member, with an optional
// participation share (nil means absent).
type MemberInput struct {
	EntityID           string
	RoleURI            string
	ParticipationShare *float64
}

// Input is the flat raw-field input to the Relationship builder. Exactly
// one of PartyA/PartyB (bilateral) or Members (multilateral) must be set.
type Input struct {
	TypeRaw string

	PartyA  *PartyInput
	PartyB  *PartyInput
	Members []MemberInput

	EffectiveDate  string // raw
	ExpirationDate string // optional raw

	Status       string // optional, defaults to StatusActive
	Jurisdiction string

	TotalValue      *float64
	ObligatedValue  *float64
	CurrencyCode    string

	ParentRelationship string
	TermsAttributes    map[string]string
	SourceReferences   []record.SourceReference

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

// Builder constructs validated Relationship records.
type Builder struct{}

// NewBuilder constructs a Relationship Builder.
func NewBuilder() *Builder { return &Builder{} }

// Build assembles and validates a Relationship from raw input.
func (b *Builder) Build(in Input) (*Relationship, []string, error) {
	var warnings []string

	if err := cepvalidate.Validate(in.Schema, in); err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(in.Jurisdiction) == "" {
		return nil, nil, cep.NewMissingField("jurisdiction")
	}
	if strings.TrimSpace(in.EffectiveDate) == "" {
		return nil, nil, cep.NewMissingField("effectiveDate")
	}
	if strings.TrimSpace(in.AttestorID) == "" {
		return nil, nil, cep.NewMissingField("attestorId")
	}
	if strings.TrimSpace(in.AttestationTimestamp) == "" {
		return nil, nil, cep.NewMissingField("attestationTimestamp")
	}

	bilateral := in.PartyA != nil && in.PartyB != nil
	multilateral := len(in.Members) > 0
	if bilateral == multilateral {
		return nil, nil, cep.NewBuilderError("exactly one of bilateral parties or multilateral members must be supplied")
	}

	var parties Parties
	if bilateral {
		parties.Bilateral = &BilateralParties{
			PartyA: Party{EntityID: in.PartyA.EntityID, RoleURI: in.PartyA.RoleURI},
			PartyB: Party{EntityID: in.PartyB.EntityID, RoleURI: in.PartyB.RoleURI},
		}
	} else {
		set := NewMultilateralMembers()
		for _, m := range in.Members {
			set.Add(Member{EntityID: m.EntityID, RoleURI: m.RoleURI, ParticipationShare: m.ParticipationShare})
		}
		if set.Len() < 2 {
			return nil, nil, cep.NewBuilderError("multilateral relationship requires at least 2 distinct members, got %d", set.Len())
		}
		if err := set.ValidateShares(); err != nil {
			return nil, nil, err
		}
		parties.Multilateral = &set
	}

	effectiveTS, err := canonical.ParseTimestamp(in.EffectiveDate)
	if err != nil {
		return nil, warnings, err
	}

	var expirationTS *canonical.Timestamp
	if strings.TrimSpace(in.ExpirationDate) != "" {
		ts, err := canonical.ParseTimestamp(in.ExpirationDate)
		if err != nil {
			return nil, warnings, err
		}
		expirationTS = &ts
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}

	var terms *FinancialTerms
	if in.TotalValue != nil || in.ObligatedValue != nil || in.CurrencyCode != "" {
		terms = &FinancialTerms{
			TotalValue:     in.TotalValue,
			ObligatedValue: in.ObligatedValue,
			CurrencyCode:   in.CurrencyCode,
		}
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

	r := &Relationship{
		SchemaVersion:      schemaVersion,
		RevisionNumber:     revision,
		PreviousRecordHash: in.PreviousRecordHash,
		CorrelationID:      correlationID,
		Attestation:        attestation,
		TypeURI:            TypeURI(in.TypeRaw),
		Parties:            parties,
		Effective:          effectiveTS,
		Expiration:         expirationTS,
		Status:             status,
		Jurisdiction:       in.Jurisdiction,
		FinancialTerms:     terms,
		ParentRelationship: in.ParentRelationship,
		TermsAttributes:    in.TermsAttributes,
		SourceReferences:   in.SourceReferences,
	}

	for _, w := range warnings {
		log.Warn(w)
	}

	return r, warnings, nil
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
