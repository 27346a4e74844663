package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferencePoint(t *testing.T) {
	c, ok, err := ParseReferencePoint("Lat: 511951N\nLong: 0000155E\nMid point of RWY 03/21")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 51+19.0/60+51.0/3600, c.Lat, 1e-9)
	assert.InDelta(t, 1.0/60+55.0/3600, c.Lon, 1e-9)

	_, ok, err = ParseReferencePoint("Lat: 511951N")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseReferencePoint("Lat: 516051N Long: 0000155E")
	require.ErrorIs(t, err, ErrMalformedCoordinate)
}

func TestParseAerodromeData(t *testing.T) {
	rows := [][]string{
		{"1", "ARP coordinates and site at AD", "Lat: 511951N Long: 0000155E"},
		{"2", "Direction and distance from (city)", "12 NM SE London"},
		{"3", "Address", "Biggin Hill Airport, Kent TN16 3BH"},
		{"4", "Telephone", "01959-578500 (Switchboard) 01959-578500 Ext 205 (ATC)"},
		{"5", "E-mail address", "ops@bigginhill.example (Operations)"},
		{"6", "Web address", "https://bigginhill.example"},
	}

	got, err := ParseAerodromeData(rows)
	require.NoError(t, err)

	require.NotNil(t, got.ReferencePoint)
	assert.InDelta(t, 51.330833, got.ReferencePoint.Lat, 1e-6)
	assert.Equal(t, "Biggin Hill Airport, Kent TN16 3BH", got.Address)
	assert.Equal(t, "https://bigginhill.example", got.Website)
	assert.Equal(t, []Telephone{
		{Description: "Switchboard", Number: "01959578500"},
		{Description: "ATC", Number: "01959578500", Extension: "205"},
	}, got.Telephones)
	assert.Equal(t, []Email{{Description: "Operations", Address: "ops@bigginhill.example"}}, got.Emails)
}

func TestParseAerodromeData_ShortRow(t *testing.T) {
	_, err := ParseAerodromeData([][]string{{"1", "ARP"}})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestParseAdministrationHours(t *testing.T) {
	rows := [][]string{
		{"1", "AD Operator", "Biggin Hill Airport Ltd"},
		{"2", "AD Administration", "Mon-Fri 0800-1700"},
		{"3", "Customs and immigration", "O/R"},
	}

	got, ok := ParseAdministrationHours(rows)
	require.True(t, ok)
	assert.Equal(t, []TimeRange{{Open: Clock(8, 0), Close: Clock(17, 0)}}, got.Regular.On(Wednesday))
	assert.Empty(t, got.Regular.On(Saturday))

	_, ok = ParseAdministrationHours(rows[:1])
	assert.False(t, ok)
}

func TestParseAirfieldIdentity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want AirfieldIdentity
	}{
		{"heading", "EGKB — LONDON BIGGIN HILL", AirfieldIdentity{ICAO: "EGKB", Name: "London Biggin Hill"}},
		{"trailing lines", "  EGLF — FARNBOROUGH\nAD 2.1 AERODROME LOCATION INDICATOR AND NAME", AirfieldIdentity{ICAO: "EGLF", Name: "Farnborough"}},
		{"no name", "EGKB", AirfieldIdentity{ICAO: "EGKB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAirfieldIdentity(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("no location indicator", func(t *testing.T) {
		_, err := ParseAirfieldIdentity("AD 2.1 — LONDON BIGGIN HILL")
		require.ErrorIs(t, err, ErrMalformedRow)
	})
}
