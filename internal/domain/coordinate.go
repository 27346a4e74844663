package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedCoordinate is returned when text matched a coordinate pattern
// but its degree, minute, second or hemisphere parts cannot be decoded.
var ErrMalformedCoordinate = errors.New("malformed coordinate")

// coordinatePattern matches the eAIP "ddmmssH dddmmssH" form. Seconds may
// carry a fraction (runway thresholds are published to 1/100 s).
const coordinatePattern = `(\d{2})(\d{2})(\d{2}(?:\.\d+)?)([NS]) (\d{3})(\d{2})(\d{2}(?:\.\d+)?)([EW])`

// Coordinate is a WGS-84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return EncodeDMS(c.Lat, 'N', 'S').String() + " " + EncodeDMS(c.Lon, 'E', 'W').String()
}

// DMS is a degrees/minutes/seconds value with its hemisphere letter.
type DMS struct {
	Degrees    int
	Minutes    int
	Seconds    float64
	Hemisphere byte
}

func (d DMS) String() string {
	width := 2
	if d.Hemisphere == 'E' || d.Hemisphere == 'W' {
		width = 3
	}
	return fmt.Sprintf("%0*d%02d%05.2f%c", width, d.Degrees, d.Minutes, d.Seconds, d.Hemisphere)
}

// DecodeDMS converts degrees, minutes and seconds text plus a hemisphere
// letter into signed decimal degrees. S and W are negative.
func DecodeDMS(degrees, minutes, seconds, hemisphere string) (float64, error) {
	d, err := strconv.Atoi(degrees)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: degrees %q", ErrMalformedCoordinate, degrees)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m >= 60 {
		return 0, fmt.Errorf("%w: minutes %q", ErrMalformedCoordinate, minutes)
	}
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil || s < 0 || s >= 60 {
		return 0, fmt.Errorf("%w: seconds %q", ErrMalformedCoordinate, seconds)
	}

	value := float64(d) + float64(m)/60 + s/3600

	switch strings.ToUpper(hemisphere) {
	case "N", "E":
		return value, nil
	case "S", "W":
		return -value, nil
	default:
		return 0, fmt.Errorf("%w: hemisphere %q", ErrMalformedCoordinate, hemisphere)
	}
}

// EncodeDMS splits signed decimal degrees back into degrees, minutes and
// seconds. positive and negative are the hemisphere letters for the sign.
func EncodeDMS(value float64, positive, negative byte) DMS {
	hemisphere := positive
	if value < 0 {
		hemisphere = negative
		value = -value
	}

	// Work in whole milliseconds of arc so 59.9999 s does not print as 60.
	total := math.Round(value * 3600 * 1000)
	ms := int64(total)
	deg := ms / (3600 * 1000)
	ms -= deg * 3600 * 1000
	min := ms / (60 * 1000)
	ms -= min * 60 * 1000

	return DMS{
		Degrees:    int(deg),
		Minutes:    int(min),
		Seconds:    float64(ms) / 1000,
		Hemisphere: hemisphere,
	}
}

// newCoordinate decodes the eight captures of coordinatePattern
// (lat d, m, s, H, lon d, m, s, H) and checks the result is on the globe.
func newCoordinate(groups []string) (Coordinate, error) {
	if len(groups) != 8 {
		return Coordinate{}, fmt.Errorf("%w: expected 8 parts, got %d", ErrMalformedCoordinate, len(groups))
	}
	if !strings.ContainsAny(groups[3], "NSns") || !strings.ContainsAny(groups[7], "EWew") {
		return Coordinate{}, fmt.Errorf("%w: hemispheres %q/%q", ErrMalformedCoordinate, groups[3], groups[7])
	}

	lat, err := DecodeDMS(groups[0], groups[1], groups[2], groups[3])
	if err != nil {
		return Coordinate{}, err
	}
	lon, err := DecodeDMS(groups[4], groups[5], groups[6], groups[7])
	if err != nil {
		return Coordinate{}, err
	}

	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %.6f out of range", ErrMalformedCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %.6f out of range", ErrMalformedCoordinate, lon)
	}

	return Coordinate{Lat: lat, Lon: lon}, nil
}
