// Command genmock reads per-section eAIP table exports and generates the
// mock fixtures used by the pipeline and integration tests. Each input file
// is named <ICAO>_<section>.csv (for example EGKB_2.17.csv) and holds the
// table rows in order, header rows included. The parsed fixture is produced
// by the real domain package under a frozen clock so it is reproducible.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv-dir ../eaip-collector/data/export \
//	  -raw-out data/mock/eaip_sections.json \
//	  -parsed-out data/mock/eaip_sections_parsed.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/eaip-etl/internal/domain"
)

// fixtureTime is the ProcessedAt stamped on every parsed fixture record.
var fixtureTime = time.Date(2026, time.March, 19, 6, 0, 0, 0, time.UTC)

var exportNameRe = regexp.MustCompile(`^([A-Z]{4})_(\d\.\d{1,2})\.csv$`)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvDir := flag.String("csv-dir", "", "directory containing <ICAO>_<section>.csv exports")
	rawOut := flag.String("raw-out", "", "output path for the raw section fixture")
	parsedOut := flag.String("parsed-out", "", "output path for the parsed section fixture")
	flag.Parse()

	if *csvDir == "" || *rawOut == "" || *parsedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-dir, -raw-out, -parsed-out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	sections, err := loadExports(*csvDir)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return fmt.Errorf("no <ICAO>_<section>.csv files in %s", *csvDir)
	}

	parsed := make([]domain.ParsedSection, 0, len(sections))
	for _, sec := range sections {
		p, err := domain.ParseSection(sec)
		if err != nil {
			return fmt.Errorf("parse %s AD %s: %w", sec.Airfield, sec.Section, err)
		}
		parsed = append(parsed, p)
		log.Printf("%s AD %s: %d rows, %d skipped", sec.Airfield, sec.Section, len(sec.Rows), p.RowsSkipped)
	}

	if err := writeJSON(*rawOut, sections); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if err := writeJSON(*parsedOut, parsed); err != nil {
		return fmt.Errorf("writing parsed fixture: %w", err)
	}
	log.Printf("wrote parsed fixture: %s", *parsedOut)

	printStats(parsed)
	return nil
}

// loadExports reads every export in dir, ordered by airfield then section.
func loadExports(dir string) ([]domain.RawSection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var sections []domain.RawSection
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := exportNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		rows, err := readRows(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		sections = append(sections, domain.RawSection{Airfield: m[1], Section: m[2], Rows: rows})
	}

	sort.Slice(sections, func(i, j int) bool {
		if sections[i].Airfield != sections[j].Airfield {
			return sections[i].Airfield < sections[j].Airfield
		}
		return sectionLess(sections[i].Section, sections[j].Section)
	})
	return sections, nil
}

// readRows reads a CSV export. Rows keep their own width since notes and
// footnotes span the whole table in a single cell.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// sectionLess orders "2.2" before "2.12".
func sectionLess(a, b string) bool {
	var am, an, bm, bn int
	fmt.Sscanf(a, "%d.%d", &am, &an) //nolint:errcheck // names already matched exportNameRe
	fmt.Sscanf(b, "%d.%d", &bm, &bn) //nolint:errcheck // names already matched exportNameRe
	if am != bm {
		return am < bm
	}
	return an < bn
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// statsResult holds aggregated counts for printStats reporting.
type statsResult struct {
	airfields   map[string]int
	sections    map[string]int
	volumes     int
	circles     int
	segments    map[domain.SegmentKind]int
	noLateral   int
	noVertical  int
	radios      int
	runways     int
	withHours   int
	hoursCells  int
	rowsSkipped int
}

func collectStats(parsed []domain.ParsedSection) statsResult {
	s := statsResult{
		airfields: map[string]int{},
		sections:  map[string]int{},
		segments:  map[domain.SegmentKind]int{},
	}
	for i := range parsed {
		p := &parsed[i]
		s.airfields[p.Airfield]++
		s.sections[p.Section]++
		s.rowsSkipped += p.RowsSkipped
		s.runways += len(p.Runways)
		s.radios += len(p.Radios)

		for _, vol := range p.Airspace {
			s.volumes++
			switch {
			case vol.Lateral.Circle != nil:
				s.circles++
			case len(vol.Lateral.Segments) > 0:
				for _, seg := range vol.Lateral.Segments {
					s.segments[seg.Kind]++
				}
			default:
				s.noLateral++
			}
			if vol.UpperLimit == nil || vol.LowerLimit == nil {
				s.noVertical++
			}
			s.hoursCells++
			if vol.OperatingHours != nil {
				s.withHours++
			}
		}
		for _, rf := range p.Radios {
			s.hoursCells++
			if rf.OperatingHours != nil {
				s.withHours++
			}
		}
	}
	return s
}

func printStats(parsed []domain.ParsedSection) {
	stats := collectStats(parsed)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Sections: %d across %d airfields\n", len(parsed), len(stats.airfields))

	names := make([]string, 0, len(stats.sections))
	for name := range stats.sections {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return sectionLess(names[i], names[j]) })
	fmt.Print("By section:")
	for _, name := range names {
		fmt.Printf(" %s=%d", name, stats.sections[name])
	}
	fmt.Println()

	fmt.Printf("Runways: %d\n", stats.runways)
	fmt.Printf("Airspace volumes: %d (circles=%d, no lateral=%d, missing a vertical limit=%d)\n",
		stats.volumes, stats.circles, stats.noLateral, stats.noVertical)
	fmt.Printf("Segments: arc=%d line=%d parallel=%d\n",
		stats.segments[domain.SegmentArc], stats.segments[domain.SegmentLine], stats.segments[domain.SegmentParallel])
	fmt.Printf("Radio frequencies: %d\n", stats.radios)
	fmt.Printf("Hours parsed: %d of %d cells\n", stats.withHours, stats.hoursCells)
	fmt.Printf("Rows skipped: %d\n", stats.rowsSkipped)
}
