package canonjson_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/civic-interconnect/cep-core/pkg/canonical"
	"github.com/civic-interconnect/cep-core/pkg/canonjson"
	"github.com/civic-interconnect/cep-core/pkg/entity"
	"github.com/civic-interconnect/cep-core/pkg/localize"
)

func TestCrossCheckEntityKeysMatch(t *testing.T) {
	b := entity.NewBuilder(localize.NewRegistry(""))
	e, _, err := b.Build(entity.Input{
		LegalName:            "Springfield Unified School District",
		CountryCode:          "US",
		Jurisdiction:         "us",
		EntityTypeRaw:        "school_district",
		AttestorID:           "attestor-1",
		AttestationTimestamp: "2024-01-01T00:00:00.000000Z",
	})
	require.NoError(t, err)

	handRolled := canonical.ToCanonicalString(e)
	require.NoError(t, canonjson.CrossCheck(e, handRolled))
}
