package cep

// SchemaVersion is the schema version this core implementation produces and
// accepts on ingest (major-version compatible records from other producers
// are also accepted).
const SchemaVersion = "1.0.0"

// ManualAttestationProof is the explicit, recognizable proof type used when
// a caller omits attestation details. An empty proof under this type is not
// an error — it is a documented default.
const ManualAttestationProof = "ManualAttestation"

// DefaultProofPurpose is the proof purpose attached to a ManualAttestation
// default, matching common verifiable-credential usage.
const DefaultProofPurpose = "assertionMethod"
