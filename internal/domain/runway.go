package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	runwayRowCells   = 6
	distanceRowCells = 5
	lightingRowCells = 4
)

var (
	dimensionsRe    = regexp.MustCompile(`(\d+)\s+x\s+(\d+)\s+M`)
	surfaceRe       = regexp.MustCompile(`RWY surface: (.+)`)
	thresholdRe     = regexp.MustCompile(coordinatePattern)
	thresholdElevRe = regexp.MustCompile(`THR (\d+) FT`)
	distanceRe      = regexp.MustCompile(`(\d+) M`)
)

// Runway is one AD 2.12 runway characteristics row. Fields the row leaves
// blank are nil; unknown dimensions are 0 x 0.
type Runway struct {
	Designation          string      `json:"designation"`
	BearingTrue          *float64    `json:"bearing_true,omitempty"`
	LengthM              int         `json:"length_m"`
	WidthM               int         `json:"width_m"`
	Surface              string      `json:"surface,omitempty"`
	Threshold            *Coordinate `json:"threshold,omitempty"`
	ThresholdElevationFt *int        `json:"threshold_elevation_ft,omitempty"`
}

// ParseRunwayRow assembles a Runway from the first six cells of an AD 2.12
// row: designation, true bearing, dimensions, surface, threshold position
// and threshold elevation.
func ParseRunwayRow(cells []string) (Runway, error) {
	if len(cells) < runwayRowCells {
		return Runway{}, fmt.Errorf("%w: runway row has %d cells, want at least %d", ErrMalformedRow, len(cells), runwayRowCells)
	}

	rwy := Runway{Designation: strings.TrimSpace(cells[0])}

	if bearing := strings.TrimSpace(strings.ReplaceAll(cells[1], "°", "")); bearing != "" {
		v, err := strconv.ParseFloat(bearing, 64)
		if err != nil {
			return Runway{}, fmt.Errorf("%w: runway %s bearing %q", ErrMalformedRow, rwy.Designation, cells[1])
		}
		rwy.BearingTrue = &v
	}

	// "-" marks an unpublished dimension.
	if m := dimensionsRe.FindStringSubmatch(strings.ReplaceAll(cells[2], "-", "0")); m != nil {
		rwy.LengthM, _ = strconv.Atoi(m[1])
		rwy.WidthM, _ = strconv.Atoi(m[2])
	}

	if m := surfaceRe.FindStringSubmatch(cells[3]); m != nil {
		rwy.Surface = strings.TrimSpace(m[1])
	}

	if m := thresholdRe.FindStringSubmatch(cells[4]); m != nil {
		c, err := newCoordinate(m[1:])
		if err != nil {
			return Runway{}, fmt.Errorf("runway %s threshold: %w", rwy.Designation, err)
		}
		rwy.Threshold = &c
	}

	if m := thresholdElevRe.FindStringSubmatch(cells[5]); m != nil {
		if ft, err := strconv.Atoi(m[1]); err == nil {
			rwy.ThresholdElevationFt = &ft
		}
	}

	return rwy, nil
}

// DeclaredDistances holds the AD 2.13 distances for one runway designation,
// in metres. A designation can appear on several rows (full length and
// intersection departures), so each list is sorted longest first.
type DeclaredDistances struct {
	Designation string `json:"designation"`
	TORA        []int  `json:"tora,omitempty"`
	TODA        []int  `json:"toda,omitempty"`
	ASDA        []int  `json:"asda,omitempty"`
	LDA         []int  `json:"lda,omitempty"`
}

// ParseDeclaredDistances groups AD 2.13 body rows by runway designation, in
// the order designations first appear. Cells 1 to 4 are TORA, TODA, ASDA and
// LDA; a cell without "<n> M" contributes nothing. Rows narrower than five
// cells are skipped and counted.
func ParseDeclaredDistances(rows [][]string) ([]DeclaredDistances, int) {
	var (
		out     []DeclaredDistances
		skipped int
	)
	index := map[string]int{}

	for _, cells := range rows {
		if len(cells) < distanceRowCells {
			skipped++
			continue
		}
		designation := strings.TrimSpace(cells[0])
		i, ok := index[designation]
		if !ok {
			i = len(out)
			index[designation] = i
			out = append(out, DeclaredDistances{Designation: designation})
		}
		d := &out[i]
		d.TORA = appendDistance(d.TORA, cells[1])
		d.TODA = appendDistance(d.TODA, cells[2])
		d.ASDA = appendDistance(d.ASDA, cells[3])
		d.LDA = appendDistance(d.LDA, cells[4])
	}

	for i := range out {
		for _, list := range [][]int{out[i].TORA, out[i].TODA, out[i].ASDA, out[i].LDA} {
			slices.SortFunc(list, func(a, b int) int { return b - a })
		}
	}
	return out, skipped
}

func appendDistance(list []int, cell string) []int {
	m := distanceRe.FindStringSubmatch(cell)
	if m == nil {
		return list
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return list
	}
	return append(list, v)
}

// RunwayLighting is the approach slope indicator published in AD 2.14 for
// one runway, e.g. "PAPI 3°".
type RunwayLighting struct {
	Designation string `json:"designation"`
	PAPI        string `json:"papi,omitempty"`
}

// ParseLightingRow reads an AD 2.14 row. The slope indicator is the first
// line of cell 3.
func ParseLightingRow(cells []string) (RunwayLighting, error) {
	if len(cells) < lightingRowCells {
		return RunwayLighting{}, fmt.Errorf("%w: lighting row has %d cells, want at least %d", ErrMalformedRow, len(cells), lightingRowCells)
	}
	papi, _, _ := strings.Cut(cells[3], "\n")
	return RunwayLighting{
		Designation: strings.TrimSpace(cells[0]),
		PAPI:        strings.TrimSpace(papi),
	}, nil
}
