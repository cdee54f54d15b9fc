package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundsToCents(t *testing.T) {
	a, err := Parse("9.99")
	require.NoError(t, err)
	assert.Equal(t, Amount(999), a)

	a, err = Parse("1.005")
	require.NoError(t, err)
	assert.Equal(t, Amount(101), a)

	_, err = Parse("nine")
	assert.Error(t, err)
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(Amount(300))
	require.NoError(t, err)
	assert.Equal(t, "3.00", string(b))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`11.49`), &a))
	assert.Equal(t, Amount(1149), a)

	require.NoError(t, json.Unmarshal([]byte(`"2.5"`), &a))
	assert.Equal(t, Amount(250), a)

	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
}

func TestRateOfIsUnrounded(t *testing.T) {
	r := MustRate("0.085")
	tax := r.Of(Amount(2273))
	assert.True(t, tax.Equal(decimal.RequireFromString("1.93205")), tax.String())
	assert.Equal(t, "$1.93", Display(tax))
	assert.Equal(t, "8.5%", r.Percent())
}

func TestRateJSONIsBareNumber(t *testing.T) {
	b, err := json.Marshal(MustRate("0.1"))
	require.NoError(t, err)
	assert.Equal(t, "0.1", string(b))

	var r Rate
	require.NoError(t, json.Unmarshal([]byte(`0.085`), &r))
	assert.True(t, r.Equal(decimal.RequireFromString("0.085")))
}

func TestDisplayNegative(t *testing.T) {
	assert.Equal(t, "-$1.50", Amount(-150).Display())
	assert.Equal(t, "$0.00", Amount(0).Display())
}
