package domain

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	refLatRe    = regexp.MustCompile(`Lat: (\d{2})(\d{2})(\d{2})([NS])`)
	refLongRe   = regexp.MustCompile(`Long: (\d{3})(\d{2})(\d{2})([EW])`)
	telephoneRe = regexp.MustCompile(`([\d\- ]+\d)(?: Ext (\d+))?(?: \(([^)]+)\))?`)
	emailRe     = regexp.MustCompile(`(\S+@\S+)(?: \(([^)]+)\))?`)
	icaoRe      = regexp.MustCompile(`^[A-Z]{4}\b`)
	nameRe      = regexp.MustCompile(`—\s+([\w /]+)`)
)

const administrationLabel = "AD Administration"

// Telephone is one published contact number with digits only.
type Telephone struct {
	Description string `json:"description,omitempty"`
	Number      string `json:"number"`
	Extension   string `json:"extension,omitempty"`
}

// Email is one published contact address.
type Email struct {
	Description string `json:"description,omitempty"`
	Address     string `json:"address"`
}

// AerodromeData holds the AD 2.2 geographical and administrative fields.
type AerodromeData struct {
	ReferencePoint *Coordinate `json:"reference_point,omitempty"`
	Address        string      `json:"address,omitempty"`
	Website        string      `json:"website,omitempty"`
	Telephones     []Telephone `json:"telephones,omitempty"`
	Emails         []Email     `json:"emails,omitempty"`
}

// AirfieldIdentity is the AD 2.1 heading, e.g. "EGKB — LONDON BIGGIN HILL".
type AirfieldIdentity struct {
	ICAO string `json:"icao"`
	Name string `json:"name,omitempty"`
}

// ParseAirfieldIdentity reads the location indicator and name from the
// AD 2.1 heading text. The name is title-cased; it is empty when the text
// has no dash-separated name.
func ParseAirfieldIdentity(text string) (AirfieldIdentity, error) {
	text = strings.TrimSpace(text)
	icao := icaoRe.FindString(text)
	if icao == "" {
		return AirfieldIdentity{}, fmt.Errorf("%w: no location indicator in %q", ErrMalformedRow, text)
	}

	id := AirfieldIdentity{ICAO: icao}
	if m := nameRe.FindStringSubmatch(text); m != nil {
		id.Name = cases.Title(language.English).String(strings.TrimSpace(m[1]))
	}
	return id, nil
}

// ParseReferencePoint reads the aerodrome reference point from text such
// as "Lat: 514851N Long: 0001417W". It returns false when either half is
// missing.
func ParseReferencePoint(text string) (Coordinate, bool, error) {
	lat := refLatRe.FindStringSubmatch(text)
	lon := refLongRe.FindStringSubmatch(text)
	if lat == nil || lon == nil {
		return Coordinate{}, false, nil
	}
	groups := append(append(make([]string, 0, 8), lat[1:]...), lon[1:]...)
	c, err := newCoordinate(groups)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("reference point: %w", err)
	}
	return c, true, nil
}

// ParseAerodromeData reads AD 2.2 rows of the form [item, label, value].
// The reference point is in the value of the first row.
func ParseAerodromeData(rows [][]string) (AerodromeData, error) {
	var out AerodromeData
	for i, row := range rows {
		if len(row) < 3 {
			return AerodromeData{}, fmt.Errorf("%w: AD 2.2 row %d has %d cells", ErrMalformedRow, i, len(row))
		}
		if i == 0 {
			ref, ok, err := ParseReferencePoint(row[2])
			if err != nil {
				return AerodromeData{}, err
			}
			if ok {
				out.ReferencePoint = &ref
			}
		}

		value := strings.TrimSpace(row[2])
		switch strings.TrimSpace(row[1]) {
		case "Address":
			out.Address = value
		case "Web address":
			out.Website = value
		case "Telephone":
			out.Telephones = parseTelephones(value)
		case "E-mail address":
			out.Emails = parseEmails(value)
		}
	}
	return out, nil
}

func parseTelephones(text string) []Telephone {
	var out []Telephone
	for _, m := range telephoneRe.FindAllStringSubmatch(text, -1) {
		out = append(out, Telephone{
			Description: m[3],
			Number:      digitsOnly(m[1]),
			Extension:   digitsOnly(m[2]),
		})
	}
	return out
}

func parseEmails(text string) []Email {
	var out []Email
	for _, m := range emailRe.FindAllStringSubmatch(text, -1) {
		out = append(out, Email{Description: m[2], Address: m[1]})
	}
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAdministrationHours finds the "AD Administration" row of an AD 2.3
// table and parses its hours. It returns false when there is no such row
// or its text holds no schedule.
func ParseAdministrationHours(rows [][]string) (OperatingSchedule, bool) {
	for _, row := range rows {
		if len(row) < 3 || strings.TrimSpace(row[1]) != administrationLabel {
			continue
		}
		return ParseOperatingHours(row[2])
	}
	return OperatingSchedule{}, false
}
