package identifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLEIValidation(t *testing.T) {
	lei, err := NewLEI("529900t8bm49aursdo55")
	require.NoError(t, err)
	require.Equal(t, "529900T8BM49AURSDO55", lei.Value())

	_, err = NewLEI("too-short")
	require.Error(t, err)
}

func TestSAMUEIValidation(t *testing.T) {
	u, err := NewSAMUEI("j6h4fb3n5yk7")
	require.NoError(t, err)
	require.Equal(t, "J6H4FB3N5YK7", u.Value())

	_, err = NewSAMUEI("short")
	require.Error(t, err)
}

func TestCanadianBNValidation(t *testing.T) {
	bn, err := NewCanadianBN("123456789rc0001")
	require.NoError(t, err)
	require.Equal(t, "123456789RC0001", bn.Value())

	_, err = NewCanadianBN("bad")
	require.Error(t, err)
}

func TestPrimaryIdentifierPriority(t *testing.T) {
	lei, _ := NewLEI("529900T8BM49AURSDO55")
	uei, _ := NewSAMUEI("J6H4FB3N5YK7")
	snfei, _ := NewSNFEI(strings.Repeat("0", 62) + "ab")

	ids := Identifiers{LEI: &lei, SAMUEI: &uei, SNFEI: &snfei}
	primary, ok := ids.PrimaryIdentifier()
	require.True(t, ok)
	require.Equal(t, "cep-entity:lei:529900T8BM49AURSDO55", primary)

	idsNoLEI := Identifiers{SAMUEI: &uei, SNFEI: &snfei}
	primary, ok = idsNoLEI.PrimaryIdentifier()
	require.True(t, ok)
	require.Equal(t, "cep-entity:sam-uei:J6H4FB3N5YK7", primary)

	idsNone := Identifiers{}
	_, ok = idsNone.PrimaryIdentifier()
	require.False(t, ok)
}

func TestHasAny(t *testing.T) {
	require.False(t, Identifiers{}.HasAny())
	lei, _ := NewLEI("529900T8BM49AURSDO55")
	require.True(t, Identifiers{LEI: &lei}.HasAny())
}
