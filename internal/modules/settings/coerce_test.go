package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		raw  string
		want interface{}
	}{
		{"text kept", KindText, "Tony's Pizza", "Tony's Pizza"},
		{"number", KindNumber, "3.99", json.Number("3.99")},
		{"number trims", KindNumber, " 12 ", json.Number("12")},
		{"bad number is zero", KindNumber, "abc", json.Number("0")},
		{"empty number is zero", KindNumber, "", json.Number("0")},
		{"percentage", KindPercentage, "8.5", json.Number("0.085")},
		{"bad percentage is zero", KindPercentage, "x", json.Number("0")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Coerce(tc.kind, tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoerceRejectsUnknownKind(t *testing.T) {
	_, err := Coerce("date", "2024-01-01")
	assert.Error(t, err)
}

func TestPresent(t *testing.T) {
	assert.Equal(t, "8.5", Present(KindPercentage, json.Number("0.085")))
	assert.Equal(t, "3.99", Present(KindNumber, json.Number("3.99")))
	assert.Equal(t, "n/a", Present(KindPercentage, "n/a"))
}

func TestKindValid(t *testing.T) {
	assert.True(t, KindPercentage.Valid())
	assert.True(t, KindText.Valid())
	assert.False(t, Kind("fraction").Valid())
	assert.False(t, Kind("").Valid())
}
