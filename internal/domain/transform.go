package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownSection is returned for a section number this service does not
// parse.
var ErrUnknownSection = errors.New("unknown section")

// Section numbers handled by ParseSection.
const (
	SectionIdentity          = "2.1"
	SectionGeographical      = "2.2"
	SectionOperationHours    = "2.3"
	SectionRunways           = "2.12"
	SectionDeclaredDistances = "2.13"
	SectionLighting          = "2.14"
	SectionAirspace          = "2.17"
	SectionRadio             = "2.18"
)

// tableHeaderRows is the number of heading rows at the top of the AD 2.12,
// 2.13, 2.14, 2.17 and 2.18 tables.
const tableHeaderRows = 2

// ParseRawEvent deserializes a RawEvent's value into a RawSection.
func ParseRawEvent(raw RawEvent) (RawSection, error) {
	var sec RawSection
	if err := json.Unmarshal(raw.Value, &sec); err != nil {
		return RawSection{}, fmt.Errorf("parse raw event: %w", err)
	}
	sec.Airfield = strings.ToUpper(strings.TrimSpace(sec.Airfield))
	sec.Section = strings.TrimSpace(sec.Section)
	if sec.Airfield == "" || sec.Section == "" {
		return RawSection{}, fmt.Errorf("parse raw event: airfield and section are required")
	}
	return sec, nil
}

// ParseSection converts the rows of one section into typed values and
// stamps the result with a deterministic ID and the processing time.
func ParseSection(sec RawSection) (ParsedSection, error) {
	out := ParsedSection{
		ID:       generateID(sec),
		Airfield: sec.Airfield,
		Section:  sec.Section,
	}

	switch sec.Section {
	case SectionIdentity:
		id, err := ParseAirfieldIdentity(identityText(sec))
		if err != nil {
			return ParsedSection{}, fmt.Errorf("%s AD %s: %w", sec.Airfield, sec.Section, err)
		}
		out.Identity = &id

	case SectionGeographical:
		data, err := ParseAerodromeData(sec.Rows)
		if err != nil {
			return ParsedSection{}, fmt.Errorf("%s AD %s: %w", sec.Airfield, sec.Section, err)
		}
		out.Aerodrome = &data

	case SectionOperationHours:
		if hours, ok := ParseAdministrationHours(sec.Rows); ok {
			out.Administration = &hours
		}

	case SectionRunways:
		for i, row := range bodyRows(sec.Rows) {
			rwy, err := ParseRunwayRow(row)
			if err != nil {
				if errors.Is(err, ErrMalformedRow) {
					out.RowsSkipped++
					continue
				}
				return ParsedSection{}, fmt.Errorf("%s AD %s row %d: %w", sec.Airfield, sec.Section, i, err)
			}
			out.Runways = append(out.Runways, rwy)
		}

	case SectionDeclaredDistances:
		out.DeclaredDistances, out.RowsSkipped = ParseDeclaredDistances(bodyRows(sec.Rows))

	case SectionLighting:
		for _, row := range bodyRows(sec.Rows) {
			lighting, err := ParseLightingRow(row)
			if err != nil {
				out.RowsSkipped++
				continue
			}
			out.Lighting = append(out.Lighting, lighting)
		}

	case SectionAirspace:
		for i, row := range bodyRows(sec.Rows) {
			if len(row) != airspaceRowCells {
				out.RowsSkipped++
				continue
			}
			vol, err := ParseAirspaceRow(row)
			if err != nil {
				return ParsedSection{}, fmt.Errorf("%s AD %s row %d: %w", sec.Airfield, sec.Section, i, err)
			}
			out.Airspace = append(out.Airspace, vol)
		}

	case SectionRadio:
		radios, skipped, err := ParseRadioRows(bodyRows(sec.Rows))
		if err != nil {
			return ParsedSection{}, fmt.Errorf("%s AD %s: %w", sec.Airfield, sec.Section, err)
		}
		out.Radios = radios
		out.RowsSkipped = skipped

	default:
		return ParsedSection{}, fmt.Errorf("%w: %q", ErrUnknownSection, sec.Section)
	}

	out.ProcessedAt = clock.Now().UTC()
	return out, nil
}

// identityText returns the AD 2.1 heading. Exports that carry it as a
// table instead of Raw are joined cell by cell.
func identityText(sec RawSection) string {
	if sec.Raw != "" {
		return sec.Raw
	}
	var parts []string
	for _, row := range sec.Rows {
		parts = append(parts, row...)
	}
	return strings.Join(parts, "\n")
}

func bodyRows(rows [][]string) [][]string {
	if len(rows) <= tableHeaderRows {
		return nil
	}
	return rows[tableHeaderRows:]
}

// SerializeParsedSection encodes a ParsedSection for the sink topic, keyed
// by its ID.
func SerializeParsedSection(p ParsedSection) (OutputEvent, error) {
	value, err := json.Marshal(p)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize parsed section: %w", err)
	}
	return OutputEvent{
		Key:   []byte(p.ID),
		Value: value,
		Headers: map[string]string{
			"section":      p.Section,
			"processed_at": p.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// generateID produces a deterministic ID from the section's identity and
// content, so replaying a message yields the same key downstream.
func generateID(sec RawSection) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", sec.Airfield, sec.Section, sec.Raw)
	for _, row := range sec.Rows {
		h.Write([]byte{0x1e})
		h.Write([]byte(strings.Join(row, "\x1f")))
	}
	sum := h.Sum(nil)
	return sec.Airfield + "-" + strings.ReplaceAll(sec.Section, ".", "_") + "-" + hex.EncodeToString(sum[:8])
}
