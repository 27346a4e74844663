package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerticalLimit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want VerticalLimit
	}{
		{"altitude", "15000 FT ALT", VerticalLimit{Kind: VerticalAltitude, Feet: 15000}},
		{"above ground", "2000 FT AGL", VerticalLimit{Kind: VerticalAltitude, Feet: 2000, AboveGroundLevel: true}},
		{"surface", "SFC", VerticalLimit{Kind: VerticalLevel, FlightLevel: 0}},
		{"flight level", "FL195", VerticalLimit{Kind: VerticalLevel, FlightLevel: 195}},
		{"surrounding space", " FL065 ", VerticalLimit{Kind: VerticalLevel, FlightLevel: 65}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVerticalLimit(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVerticalLimit_NoLimit(t *testing.T) {
	for _, text := range []string{"", "FL", "UNL", "2500 FT", "2500 FT AMSL", "FL195 (see remarks)"} {
		t.Run(text, func(t *testing.T) {
			got, ok := ParseVerticalLimit(text)
			assert.False(t, ok)
			assert.Equal(t, VerticalLimit{}, got)
		})
	}
}

func TestVerticalPriority(t *testing.T) {
	assert.Equal(t, []VerticalKind{VerticalAltitude, VerticalLevel}, VerticalPriority)
}

func TestVerticalLimitJSON(t *testing.T) {
	b, err := json.Marshal(VerticalLimit{Kind: VerticalAltitude, Feet: 2000, AboveGroundLevel: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"altitude","feet":2000,"agl":true,"flight_level":0}`, string(b))

	b, err = json.Marshal(Surface)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"level","flight_level":0}`, string(b))

	var out VerticalLimit
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"level","flight_level":195}`), &out))
	assert.Equal(t, VerticalLimit{Kind: VerticalLevel, FlightLevel: 195}, out)

	require.Error(t, json.Unmarshal([]byte(`{"kind":"depth"}`), &out))
}
