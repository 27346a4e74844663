package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const radioRowCells = 7

var frequencyRe = regexp.MustCompile(`(\d{3}\.\d{3}) MHz(?:\n(.+))?`)

// RadioFrequency is one AD 2.18 communication facility row.
type RadioFrequency struct {
	Designation    string             `json:"designation"`
	Callsign       string             `json:"callsign"`
	FrequencyMHz   float64            `json:"frequency_mhz"`
	Description    string             `json:"description,omitempty"`
	OperatingHours *OperatingSchedule `json:"operating_hours,omitempty"`
	Remarks        string             `json:"remarks,omitempty"`
}

// ParseRadioRows assembles the frequency rows of an AD 2.18 table. The
// designation and callsign cells are only filled on the first row of a
// service, so blanks take the value from the row above. Rows that are not
// seven cells wide are skipped and counted in the second return value.
func ParseRadioRows(rows [][]string) ([]RadioFrequency, int, error) {
	var (
		out         []RadioFrequency
		skipped     int
		designation string
		callsign    string
	)

	for i, row := range rows {
		if len(row) != radioRowCells {
			skipped++
			continue
		}
		if d := strings.TrimSpace(row[0]); d != "" {
			designation = d
		}
		if c := strings.TrimSpace(row[1]); c != "" {
			callsign = c
		}

		m := frequencyRe.FindStringSubmatch(row[2])
		if m == nil {
			return nil, skipped, fmt.Errorf("%w: radio row %d has no frequency in %q", ErrMalformedRow, i, row[2])
		}
		mhz, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, skipped, fmt.Errorf("%w: radio row %d frequency %q", ErrMalformedRow, i, m[1])
		}

		rf := RadioFrequency{
			Designation:  designation,
			Callsign:     callsign,
			FrequencyMHz: mhz,
			Description:  strings.TrimSpace(m[2]),
			Remarks:      strings.TrimSpace(row[6]),
		}
		if hours, ok := ParseOperatingHours(row[5]); ok {
			rf.OperatingHours = &hours
		}
		out = append(out, rf)
	}

	return out, skipped, nil
}
