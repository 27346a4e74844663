package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SegmentKind tags a BoundarySegment.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota + 1
	SegmentParallel
	SegmentArc
)

var segmentKindNames = map[SegmentKind]string{
	SegmentLine:     "line",
	SegmentParallel: "parallel",
	SegmentArc:      "arc",
}

func (k SegmentKind) String() string {
	if name, ok := segmentKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

func (k SegmentKind) MarshalJSON() ([]byte, error) {
	name, ok := segmentKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown segment kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *SegmentKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for kind, name := range segmentKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown segment kind %q", s)
}

// Direction is the sense in which an arc is flown.
type Direction string

const (
	Clockwise     Direction = "clockwise"
	AntiClockwise Direction = "anti-clockwise"
)

// BoundarySegment is one leg of a lateral boundary. Centre, RadiusNM and
// Direction are only set for arcs. End is always the next segment's Start.
type BoundarySegment struct {
	Kind      SegmentKind `json:"kind"`
	Start     Coordinate  `json:"start"`
	End       Coordinate  `json:"end"`
	Centre    *Coordinate `json:"centre,omitempty"`
	RadiusNM  float64     `json:"radius_nm,omitempty"`
	Direction Direction   `json:"direction,omitempty"`
}

// Circle is a complete boundary on its own.
type Circle struct {
	Centre   Coordinate `json:"centre"`
	RadiusNM float64    `json:"radius_nm"`
}

// Boundary is either one Circle or a closed chain of segments. A boundary
// with neither means the lateral limits could not be read.
type Boundary struct {
	Circle   *Circle           `json:"circle,omitempty"`
	Segments []BoundarySegment `json:"segments,omitempty"`
}

// IsEmpty reports whether nothing in the description matched a shape.
func (b Boundary) IsEmpty() bool {
	return b.Circle == nil && len(b.Segments) == 0
}

// ShapePriority is the order descriptors are tried in. An arc descriptor
// starts with a bare coordinate, so arcs must be tried before lines.
var ShapePriority = []SegmentKind{SegmentArc, SegmentLine, SegmentParallel}

const segmentDelimiter = " - "

var (
	circleRe = regexp.MustCompile(
		`^[^0-9]*\b(?i:circle)\b.*?(\d+(?:\.\d+)?) NM\b.*?\bcentred\b.*?` + coordinatePattern +
			`(?: .*\((\d+)/(\d+)\))?.*$`,
	)

	shapePatterns = map[SegmentKind]*regexp.Regexp{
		SegmentArc: regexp.MustCompile(
			`^` + coordinatePattern + ` thence (clockwise|anti-clockwise) .*?\barc\b.*? ` +
				`(\d+(?:\.\d+)?) NM centred on ` + coordinatePattern + ` to ` + coordinatePattern + `$`,
		),
		SegmentLine:     regexp.MustCompile(`^` + coordinatePattern + `$`),
		SegmentParallel: regexp.MustCompile(`^` + coordinatePattern + `\b.*\bline of latitude\b.*$`),
	}
)

// ParseLateralLimits reads the boundary description of an airspace volume.
// A description that reads as a circle is returned as one and is never
// split into segments. Anything else is split on " - " and passed to
// ParseBoundarySegments.
func ParseLateralLimits(description string) (Boundary, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Boundary{}, nil
	}

	if m := circleRe.FindStringSubmatch(description); m != nil {
		radius, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Boundary{}, fmt.Errorf("circle radius %q: %w", m[1], err)
		}
		centre, err := newCoordinate(m[2:10])
		if err != nil {
			return Boundary{}, fmt.Errorf("circle centre: %w", err)
		}
		return Boundary{Circle: &Circle{Centre: centre, RadiusNM: radius}}, nil
	}

	segments, err := ParseBoundarySegments(strings.Split(description, segmentDelimiter))
	if err != nil {
		return Boundary{}, err
	}
	return Boundary{Segments: segments}, nil
}

// ParseBoundarySegments classifies each descriptor by ShapePriority and
// chains the matches into a closed ring. Descriptors that match no shape
// are dropped.
func ParseBoundarySegments(descriptors []string) ([]BoundarySegment, error) {
	segments := make([]BoundarySegment, 0, len(descriptors))
	for i, d := range descriptors {
		seg, ok, err := classifySegment(strings.TrimSpace(d))
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i, d, err)
		}
		if ok {
			segments = append(segments, seg)
		}
	}

	for i := range segments {
		segments[i].End = segments[(i+1)%len(segments)].Start
	}
	return segments, nil
}

func classifySegment(descriptor string) (BoundarySegment, bool, error) {
	for _, kind := range ShapePriority {
		m := shapePatterns[kind].FindStringSubmatch(descriptor)
		if m == nil {
			continue
		}
		seg, err := buildSegment(kind, m[1:])
		if err != nil {
			return BoundarySegment{}, false, err
		}
		return seg, true, nil
	}
	return BoundarySegment{}, false, nil
}

// buildSegment decodes the captures of the pattern for kind. The closing
// coordinate of an arc is not used: the chain supplies End.
func buildSegment(kind SegmentKind, groups []string) (BoundarySegment, error) {
	start, err := newCoordinate(groups[:8])
	if err != nil {
		return BoundarySegment{}, err
	}
	seg := BoundarySegment{Kind: kind, Start: start}
	if kind != SegmentArc {
		return seg, nil
	}

	seg.Direction = Direction(groups[8])
	seg.RadiusNM, err = strconv.ParseFloat(groups[9], 64)
	if err != nil {
		return BoundarySegment{}, fmt.Errorf("arc radius %q: %w", groups[9], err)
	}
	centre, err := newCoordinate(groups[10:18])
	if err != nil {
		return BoundarySegment{}, err
	}
	seg.Centre = &centre
	return seg, nil
}
