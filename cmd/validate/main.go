// Command validate checks the eAIP mock fixtures end to end: the raw
// section fixture must decode, every section must parse, every airspace
// boundary must close, and every airspace volume must have its lateral and
// vertical limits. When a parsed fixture is given, a fresh parse of the raw
// fixture must match it exactly.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/eaip_sections.json \
//	  -parsed-json data/mock/eaip_sections_parsed.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eaip-etl/internal/domain"
)

// fixtureTime matches the frozen clock genmock stamps parsed fixtures with.
var fixtureTime = time.Date(2026, time.March, 19, 6, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to the raw section fixture")
	parsedJSON := flag.String("parsed-json", "", "optional path to the parsed section fixture")
	flag.Parse()

	if *rawJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *rawJSON, *parsedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, rawPath, parsedPath string) int {
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	fmt.Fprintln(out, "=== eAIP Fixture Validation ===")
	fmt.Fprintln(out)

	rawSections, err := loadJSON[domain.RawSection](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}

	var expected []domain.ParsedSection
	if parsedPath != "" {
		expected, err = loadJSON[domain.ParsedSection](parsedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load parsed JSON: %v\n", err)
			return 1
		}
	}

	decoded, decodePhase := validateDecode(rawSections)
	parsed, parsePhase := validateParse(decoded, expected)
	phases := []*phase{
		decodePhase,
		parsePhase,
		validateBoundaryClosure(parsed),
		validateCoverage(parsed),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Sections: %d raw, %d decoded, %d parsed\n", len(rawSections), len(decoded), len(parsed))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Decode ──
// Each fixture entry must survive the same decoding the pipeline applies
// to a Kafka message, and no airfield may list a section twice.

func validateDecode(raw []domain.RawSection) ([]domain.RawSection, *phase) {
	p := &phase{name: "Phase 1: Decode (raw sections)"}
	seen := map[string]int{}
	decoded := make([]domain.RawSection, 0, len(raw))

	for i := range raw {
		value, err := json.Marshal(raw[i])
		if err != nil {
			p.errorf("section %d: marshal: %v", i, err)
			continue
		}
		sec, err := domain.ParseRawEvent(domain.RawEvent{Value: value})
		if err != nil {
			p.errorf("section %d: %v", i, err)
			continue
		}
		key := sec.Airfield + " AD " + sec.Section
		if first, dup := seen[key]; dup {
			p.errorf("section %d: %s duplicates section %d", i, key, first)
			continue
		}
		seen[key] = i
		if len(sec.Rows) == 0 {
			p.errorf("%s: no rows", key)
		}
		decoded = append(decoded, sec)
	}
	return decoded, p
}

// ── Phase 2: Parse ──
// Every decoded section must parse. With a parsed fixture, the result must
// match it record for record.

func validateParse(sections []domain.RawSection, expected []domain.ParsedSection) ([]domain.ParsedSection, *phase) {
	p := &phase{name: "Phase 2: Parse (sections)"}
	parsed := make([]domain.ParsedSection, 0, len(sections))

	for _, sec := range sections {
		out, err := domain.ParseSection(sec)
		if err != nil {
			p.errorf("%s AD %s: %v", sec.Airfield, sec.Section, err)
			continue
		}
		parsed = append(parsed, out)
	}

	if expected == nil {
		return parsed, p
	}

	byID := make(map[string]domain.ParsedSection, len(expected))
	for _, e := range expected {
		byID[e.ID] = e
	}
	if len(expected) != len(parsed) {
		p.errorf("parsed fixture has %d sections, fresh parse produced %d", len(expected), len(parsed))
	}
	for _, got := range parsed {
		want, ok := byID[got.ID]
		if !ok {
			p.errorf("%s: not in parsed fixture (rows changed since the fixture was generated?)", got.ID)
			continue
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(domain.ParsedSection{}, "RawPayload"), cmpopts.EquateEmpty()); diff != "" {
			p.errorf("%s: mismatch (-fixture +parsed):\n%s", got.ID, diff)
		}
	}
	return parsed, p
}

// ── Phase 3: Boundary Closure ──
// Segment chains must be closed and every coordinate on the globe.

func validateBoundaryClosure(parsed []domain.ParsedSection) *phase {
	p := &phase{name: "Phase 3: Boundary Closure (airspace)"}
	for i := range parsed {
		for _, vol := range parsed[i].Airspace {
			checkBoundary(p, parsed[i].Airfield+" "+vol.Designation, vol.Lateral)
		}
	}
	return p
}

func checkBoundary(p *phase, name string, b domain.Boundary) {
	if b.Circle != nil {
		if b.Circle.RadiusNM <= 0 {
			p.errorf("%s: circle radius %g", name, b.Circle.RadiusNM)
		}
		checkCoordinate(p, name+" circle centre", b.Circle.Centre)
		return
	}

	n := len(b.Segments)
	for i, seg := range b.Segments {
		label := fmt.Sprintf("%s segment %d (%s)", name, i, seg.Kind)
		checkCoordinate(p, label+" start", seg.Start)
		if next := b.Segments[(i+1)%n].Start; seg.End != next {
			p.errorf("%s: ends at %s, next segment starts at %s", label, seg.End, next)
		}
		if seg.Kind != domain.SegmentArc {
			continue
		}
		if seg.Centre == nil || seg.RadiusNM <= 0 {
			p.errorf("%s: arc without centre or radius", label)
		} else {
			checkCoordinate(p, label+" centre", *seg.Centre)
		}
		if seg.Direction != domain.Clockwise && seg.Direction != domain.AntiClockwise {
			p.errorf("%s: arc direction %q", label, seg.Direction)
		}
	}
}

func checkCoordinate(p *phase, label string, c domain.Coordinate) {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		p.errorf("%s: %s off the globe", label, c)
	}
}

// ── Phase 4: Coverage ──
// Every airspace volume needs a lateral boundary and both vertical limits,
// with the lower limit below the upper one when both are altitudes or both
// are levels. Radio rows need a frequency, and the AD 2.1 location
// indicator must name the airfield the section was filed under.

func validateCoverage(parsed []domain.ParsedSection) *phase {
	p := &phase{name: "Phase 4: Coverage (required fields)"}
	for i := range parsed {
		sec := &parsed[i]
		if sec.Identity != nil && sec.Identity.ICAO != sec.Airfield {
			p.errorf("%s: AD 2.1 names %s", sec.Airfield, sec.Identity.ICAO)
		}
		for _, vol := range sec.Airspace {
			name := sec.Airfield + " " + vol.Designation
			if vol.Lateral.IsEmpty() {
				p.errorf("%s: lateral limits not recognised", name)
			}
			if vol.UpperLimit == nil {
				p.errorf("%s: upper limit not recognised", name)
			}
			if vol.LowerLimit == nil {
				p.errorf("%s: lower limit not recognised", name)
			}
			if vol.UpperLimit != nil && vol.LowerLimit != nil && !below(*vol.LowerLimit, *vol.UpperLimit) {
				p.errorf("%s: lower limit %+v is not below upper limit %+v", name, *vol.LowerLimit, *vol.UpperLimit)
			}
		}
		for j, rf := range sec.Radios {
			if rf.FrequencyMHz <= 0 {
				p.errorf("%s radio %d (%s): no frequency", sec.Airfield, j, rf.Callsign)
			}
		}
	}
	return p
}

// below compares two limits of the same kind. The surface is below
// everything. Mixed altitude and level pairs are not compared.
func below(lower, upper domain.VerticalLimit) bool {
	if lower == domain.Surface {
		return true
	}
	if lower.Kind != upper.Kind || lower.AboveGroundLevel != upper.AboveGroundLevel {
		return true
	}
	if lower.Kind == domain.VerticalLevel {
		return lower.FlightLevel < upper.FlightLevel
	}
	return lower.Feet < upper.Feet
}
