package relationship

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func shareOf(v float64) *float64 { return &v }

func bilateralInput() Input {
	return Input{
		TypeRaw:              "contract",
		PartyA:               &PartyInput{EntityID: "bank-001", RoleURI: "cep-role:grantor"},
		PartyB:               &PartyInput{EntityID: "citizen-005", RoleURI: "cep-role:grantee"},
		EffectiveDate:        "2024-01-01",
		Jurisdiction:         "us",
		AttestorID:           "attestor-1",
		AttestationTimestamp: "2024-01-01T00:00:00.000000Z",
	}
}

func TestBuildBilateralRequiresNoMembers(t *testing.T) {
	in := bilateralInput()
	in.Members = []MemberInput{{EntityID: "x", RoleURI: "cep-role:member"}}
	_, _, err := NewBuilder().Build(in)
	require.Error(t, err)
}

func TestBuildMultilateralInsertionOrderInvariance(t *testing.T) {
	members := []MemberInput{
		{EntityID: "bank-001", RoleURI: "cep-role:member"},
		{EntityID: "citizen-005", RoleURI: "cep-role:member"},
		{EntityID: "regulator-002", RoleURI: "cep-role:member"},
	}
	permuted := []MemberInput{members[2], members[0], members[1]}

	in1 := bilateralInput()
	in1.PartyA, in1.PartyB = nil, nil
	in1.Members = members

	in2 := bilateralInput()
	in2.PartyA, in2.PartyB = nil, nil
	in2.Members = permuted

	r1, _, err := NewBuilder().Build(in1)
	require.NoError(t, err)
	r2, _, err := NewBuilder().Build(in2)
	require.NoError(t, err)
	require.Equal(t, r1.Hash(), r2.Hash())
}

func TestBuildMultilateralSharesNotSummingToOneFail(t *testing.T) {
	in := bilateralInput()
	in.PartyA, in.PartyB = nil, nil
	in.Members = []MemberInput{
		{EntityID: "bank-001", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.5)},
		{EntityID: "citizen-005", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.3)},
	}
	_, _, err := NewBuilder().Build(in)
	require.Error(t, err)
}

func TestBuildMultilateralSharesSummingToOnePass(t *testing.T) {
	in := bilateralInput()
	in.PartyA, in.PartyB = nil, nil
	in.Members = []MemberInput{
		{EntityID: "bank-001", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.5)},
		{EntityID: "citizen-005", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.3)},
		{EntityID: "regulator-002", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.2)},
	}
	_, _, err := NewBuilder().Build(in)
	require.NoError(t, err)
}

func TestBuildDeterministicAcrossCalls(t *testing.T) {
	r1, _, err := NewBuilder().Build(bilateralInput())
	require.NoError(t, err)
	r2, _, err := NewBuilder().Build(bilateralInput())
	require.NoError(t, err)
	require.Equal(t, r1.Hash(), r2.Hash())
}

func TestBuildDuplicateMemberEntityIDReplaces(t *testing.T) {
	in := bilateralInput()
	in.PartyA, in.PartyB = nil, nil
	in.Members = []MemberInput{
		{EntityID: "bank-001", RoleURI: "cep-role:member"},
		{EntityID: "citizen-005", RoleURI: "cep-role:member"},
		{EntityID: "bank-001", RoleURI: "cep-role:lead-member"},
	}
	r, _, err := NewBuilder().Build(in)
	require.NoError(t, err)
	require.Equal(t, 2, r.Parties.Multilateral.Len())
	for _, m := range r.Parties.Multilateral.Members() {
		if m.EntityID == "bank-001" {
			require.Equal(t, "cep-role:lead-member", m.RoleURI)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	r, _, err := NewBuilder().Build(bilateralInput())
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded Relationship
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, r.Hash(), decoded.Hash())
}

func TestJSONRoundTripMultilateral(t *testing.T) {
	in := bilateralInput()
	in.PartyA, in.PartyB = nil, nil
	in.Members = []MemberInput{
		{EntityID: "bank-001", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.5)},
		{EntityID: "citizen-005", RoleURI: "cep-role:member", ParticipationShare: shareOf(0.5)},
	}
	r, _, err := NewBuilder().Build(in)
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded Relationship
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, r.Hash(), decoded.Hash())
	require.Equal(t, 2, decoded.Parties.Multilateral.Len())
}
