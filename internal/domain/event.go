package domain

import (
	"context"
	"time"
)

// RawSection is the JSON structure produced by the collector: the rows of
// one AD 2 table for one aerodrome, each row a list of cell texts. Tabular
// sections (2.12 to 2.14, 2.17, 2.18) still carry their two header rows.
// AD 2.1 is a heading rather than a table, so the collector sends its text
// in Raw.
type RawSection struct {
	Airfield string     `json:"airfield"`
	Section  string     `json:"section"`
	Raw      string     `json:"raw,omitempty"`
	Rows     [][]string `json:"rows"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ParsedSection is the typed result for one RawSection. Exactly one of the
// section payloads is set, matching Section.
type ParsedSection struct {
	ID          string `json:"id"`
	Airfield    string `json:"airfield"`
	Section     string `json:"section"`
	RowsSkipped int    `json:"rows_skipped,omitempty"`

	Identity          *AirfieldIdentity   `json:"identity,omitempty"`
	Aerodrome         *AerodromeData      `json:"aerodrome,omitempty"`
	Administration    *OperatingSchedule  `json:"administration_hours,omitempty"`
	Runways           []Runway            `json:"runways,omitempty"`
	DeclaredDistances []DeclaredDistances `json:"declared_distances,omitempty"`
	Lighting          []RunwayLighting    `json:"lighting,omitempty"`
	Airspace          []AirspaceVolume    `json:"airspace,omitempty"`
	Radios            []RadioFrequency    `json:"radios,omitempty"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
