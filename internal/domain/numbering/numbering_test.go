package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "OS-000123", Format(KindOrder, 123))
	assert.Equal(t, "V-000001", Format(KindSale, 1))
	assert.Equal(t, "V-999999", Format(KindSale, 999999))
	assert.Equal(t, "V-1000000", Format(KindSale, 1000000), "no se trunca por encima de 6 dígitos")
}

func TestParse_RoundTrip(t *testing.T) {
	for _, n := range []int64{1, 42, 999999, 1234567} {
		for _, k := range []Kind{KindOrder, KindSale} {
			kind, got, err := Parse(Format(k, n))
			require.NoError(t, err)
			assert.Equal(t, k, kind)
			assert.Equal(t, n, got)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "V000001", "X-000001", "OS-12", "V-abcdef", "V-000000"} {
		_, _, err := Parse(s)
		assert.Error(t, err, "debe rechazar %q", s)
	}
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, KindOrder.Valid())
	assert.True(t, KindSale.Valid())
	assert.False(t, Kind("INVOICE").Valid())
}
