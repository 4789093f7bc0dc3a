package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMarkedAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		amount int64
		found  bool
	}{
		{"dotted marker", "Rs.200", 200, true},
		{"bare marker", "momo Rs150", 150, true},
		{"lower case", "spent rs.75 on tea", 75, true},
		{"upper case", "RS.90", 90, true},
		{"first of several", "Rs.10 and Rs.20", 10, true},
		{"space breaks marker", "Rs 200", 0, false},
		{"no marker", "200 for tea", 0, false},
		{"inside a word", "hrs.5", 0, false},
		{"overflow", "Rs.99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, found := FindMarkedAmount(tt.input)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.amount, amount)
		})
	}
}

func TestContainsAndStripMarkers(t *testing.T) {
	assert.True(t, ContainsMarker("Chicken, Rs.200"))
	assert.False(t, ContainsMarker("Grocery"))
	assert.False(t, ContainsMarker("Rs.99999999999999999999"))
	_, found := FindMarkedAmount("Rs.99999999999999999999")
	assert.False(t, found)
	assert.Equal(t, "spent  on momo ", StripMarkers("spent Rs.200 on momo Rs.5"))
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("280")
	require.NoError(t, err)
	assert.Equal(t, int64(280), v)

	_, err = ParseAmount("99999999999999999999")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "Rs.500", Format("Rs.", 500))
	assert.Equal(t, "Rs.-400", Format("", -400))
	assert.Equal(t, "NPR 20", Format("NPR ", 20))
	assert.Equal(t, "Rs.250.5", FormatDecimal("", decimal.RequireFromString("250.50")))
	assert.Equal(t, "Rs.100", FormatDecimal("Rs.", decimal.NewFromInt(100)))
}
