package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedRow is returned when a table row does not have the shape its
// section requires.
var ErrMalformedRow = errors.New("malformed row")

// airspaceRowCells is the column count of an AD 2.17 row.
const airspaceRowCells = 7

var (
	upperLimitRe         = regexp.MustCompile(`Upper limit: (.+)`)
	lowerLimitRe         = regexp.MustCompile(`Lower limit: (.+)`)
	transitionAltitudeRe = regexp.MustCompile(`(\d+) FT`)
)

// AirspaceVolume is one row of an aerodrome's ATS airspace table.
type AirspaceVolume struct {
	Designation            string             `json:"designation"`
	Lateral                Boundary           `json:"lateral"`
	UpperLimit             *VerticalLimit     `json:"upper_limit,omitempty"`
	LowerLimit             *VerticalLimit     `json:"lower_limit,omitempty"`
	Class                  string             `json:"class"`
	Callsign               string             `json:"callsign"`
	Language               string             `json:"language,omitempty"`
	TransitionAltitudeFeet *int               `json:"transition_altitude_ft,omitempty"`
	OperatingHours         *OperatingSchedule `json:"operating_hours,omitempty"`
	Remarks                string             `json:"remarks,omitempty"`
}

// ParseAirspaceRow assembles an AirspaceVolume from the seven cells of an
// AD 2.17 row:
//
//	0 designation, newline, lateral limits
//	1 "Upper limit: ..." and "Lower limit: ..."
//	2 airspace class
//	3 callsign, newline, language
//	4 transition altitude
//	5 hours of applicability
//	6 remarks
//
// A limit that is missing or unreadable is left nil.
func ParseAirspaceRow(cells []string) (AirspaceVolume, error) {
	if len(cells) != airspaceRowCells {
		return AirspaceVolume{}, fmt.Errorf("%w: airspace row has %d cells, want %d", ErrMalformedRow, len(cells), airspaceRowCells)
	}

	designation, lateralText := splitFirstLine(cells[0])
	lateral, err := ParseLateralLimits(lateralText)
	if err != nil {
		return AirspaceVolume{}, fmt.Errorf("airspace %q lateral limits: %w", designation, err)
	}

	callsign, language := splitFirstLine(cells[3])

	vol := AirspaceVolume{
		Designation: designation,
		Lateral:     lateral,
		UpperLimit:  findVerticalLimit(upperLimitRe, cells[1]),
		LowerLimit:  findVerticalLimit(lowerLimitRe, cells[1]),
		Class:       strings.TrimSpace(cells[2]),
		Callsign:    callsign,
		Language:    language,
		Remarks:     strings.TrimSpace(cells[6]),
	}

	if m := transitionAltitudeRe.FindStringSubmatch(cells[4]); m != nil {
		if feet, err := strconv.Atoi(m[1]); err == nil {
			vol.TransitionAltitudeFeet = &feet
		}
	}

	if strings.TrimSpace(cells[5]) != "" {
		if hours, ok := ParseOperatingHours(cells[5]); ok {
			vol.OperatingHours = &hours
		}
	}

	return vol, nil
}

func findVerticalLimit(re *regexp.Regexp, cell string) *VerticalLimit {
	m := re.FindStringSubmatch(cell)
	if m == nil {
		return nil
	}
	limit, ok := ParseVerticalLimit(m[1])
	if !ok {
		return nil
	}
	return &limit
}

// splitFirstLine returns the first line of a cell and the rest of it.
func splitFirstLine(cell string) (string, string) {
	first, rest, _ := strings.Cut(cell, "\n")
	return strings.TrimSpace(first), strings.TrimSpace(rest)
}
