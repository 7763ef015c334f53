//go:build property
// +build property

package relationship_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/relationship"
)

// TestMultilateralMembersInsertionOrderInvariance verifies that the
// canonical string of a MultilateralMembers set does not depend on the
// order members were inserted in, only on the final entityId-keyed
// contents.
func TestMultilateralMembersInsertionOrderInvariance(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("multilateral member set canonical form is insertion-order invariant", prop.ForAll(
		func(ids []string, perm []int) bool {
			if len(ids) == 0 {
				return true
			}
			// Dedup ids to keep the set size meaningful.
			seen := make(map[string]bool)
			var unique []string
			for _, id := range ids {
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true
				unique = append(unique, id)
			}
			if len(unique) == 0 {
				return true
			}

			members := make([]relationship.Member, len(unique))
			for i, id := range unique {
				members[i] = relationship.Member{EntityID: id, RoleURI: "cep-role:member"}
			}

			shuffled := shuffle(members, perm)

			setA := relationship.NewMultilateralMembers(members...)
			setB := relationship.NewMultilateralMembers(shuffled...)

			return canonical.ToCanonicalString(setA) == canonical.ToCanonicalString(setB)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.IntRange(0, 10000)),
	))

	properties.TestingRun(t)
}

func shuffle(members []relationship.Member, perm []int) []relationship.Member {
	out := make([]relationship.Member, len(members))
	copy(out, members)
	for i := range out {
		j := i
		if len(perm) > 0 {
			j = perm[i%len(perm)] % len(out)
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}
