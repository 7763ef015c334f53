package localize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyLocalizationMTA(t *testing.T) {
	reg := NewRegistry("")
	cfg, err := reg.Resolve("us/ny")
	require.NoError(t, err)

	got := cfg.ApplyToName("MTA", Activation{Jurisdiction: "us/ny"})
	require.Equal(t, "metropolitan transportation authority", got)
}

func TestLocalizationInheritance(t *testing.T) {
	reg := NewRegistry("")
	child, err := reg.Resolve("us/ny")
	require.NoError(t, err)
	parent, err := reg.Resolve("us")
	require.NoError(t, err)

	for k, v := range parent.AgencyNames {
		require.Equal(t, v, child.AgencyNames[k], "child must inherit parent entry %q", k)
	}
	require.Contains(t, child.AgencyNames, "mta", "child overrides/adds its own entries")
}

func TestUnknownJurisdictionReturnsEmpty(t *testing.T) {
	reg := NewRegistry("")
	cfg, err := reg.Resolve("zz")
	require.NoError(t, err)
	require.Equal(t, "zz", cfg.Jurisdiction)
	require.Empty(t, cfg.AgencyNames)
}

func TestResolveCachesMergedConfig(t *testing.T) {
	reg := NewRegistry("")
	first, err := reg.Resolve("us/ny")
	require.NoError(t, err)
	second, err := reg.Resolve("us/ny")
	require.NoError(t, err)
	require.Equal(t, first.AgencyNames, second.AgencyNames)
}
