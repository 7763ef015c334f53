package localize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyToNameGuardTrueApplies(t *testing.T) {
	cfg := Config{
		Jurisdiction: "us/ca",
		Rules: []Rule{
			{Pattern: "dept", Replacement: "department", When: `entity_type == "agency"`},
		},
	}

	got := cfg.ApplyToName("dept of water", Activation{Jurisdiction: "us/ca", EntityType: "agency"})
	require.Equal(t, "department of water", got)
}

func TestApplyToNameGuardFalseSkipsRule(t *testing.T) {
	cfg := Config{
		Jurisdiction: "us/ca",
		Rules: []Rule{
			{Pattern: "dept", Replacement: "department", When: `entity_type == "agency"`},
		},
	}

	got := cfg.ApplyToName("dept of water", Activation{Jurisdiction: "us/ca", EntityType: "school_district"})
	require.Equal(t, "dept of water", got)
}

func TestApplyToNameGuardMalformedExpressionDegradesToSkip(t *testing.T) {
	cfg := Config{
		Jurisdiction: "us/ca",
		Rules: []Rule{
			{Pattern: "dept", Replacement: "department", When: `entity_type ===`},
		},
	}

	got := cfg.ApplyToName("dept of water", Activation{Jurisdiction: "us/ca", EntityType: "agency"})
	require.Equal(t, "dept of water", got, "a malformed guard must degrade the rule to skipped, never panic or apply")
}

func TestEvaluateGuardJurisdictionVariable(t *testing.T) {
	require.True(t, evaluateGuard(`jurisdiction == "us/ny"`, Activation{Jurisdiction: "us/ny"}))
	require.False(t, evaluateGuard(`jurisdiction == "us/ny"`, Activation{Jurisdiction: "us/ca"}))
}
