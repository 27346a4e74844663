package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// VerticalKind tags a VerticalLimit.
type VerticalKind int

const (
	VerticalAltitude VerticalKind = iota + 1
	VerticalLevel
)

var verticalKindNames = map[VerticalKind]string{
	VerticalAltitude: "altitude",
	VerticalLevel:    "level",
}

func (k VerticalKind) String() string {
	if name, ok := verticalKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("VerticalKind(%d)", int(k))
}

func (k VerticalKind) MarshalJSON() ([]byte, error) {
	name, ok := verticalKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown vertical kind %d", int(k))
	}
	return json.Marshal(name)
}

func (k *VerticalKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for kind, name := range verticalKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown vertical kind %q", s)
}

// VerticalLimit is an altitude in feet or a flight level. FlightLevel 0 is
// the surface.
type VerticalLimit struct {
	Kind             VerticalKind `json:"kind"`
	Feet             int          `json:"feet,omitempty"`
	AboveGroundLevel bool         `json:"agl,omitempty"`
	FlightLevel      int          `json:"flight_level"`
}

// Surface is the lower limit written "SFC".
var Surface = VerticalLimit{Kind: VerticalLevel}

// VerticalPriority is the order limit patterns are tried in.
var VerticalPriority = []VerticalKind{VerticalAltitude, VerticalLevel}

var verticalPatterns = map[VerticalKind]*regexp.Regexp{
	VerticalAltitude: regexp.MustCompile(`^(\d+) FT (ALT|AGL)$`),
	VerticalLevel:    regexp.MustCompile(`^(?:SFC|FL(\d+))$`),
}

// ParseVerticalLimit reads an upper or lower limit with its "Upper limit:"
// or "Lower limit:" prefix already removed.
func ParseVerticalLimit(text string) (VerticalLimit, bool) {
	text = strings.TrimSpace(text)
	for _, kind := range VerticalPriority {
		m := verticalPatterns[kind].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch kind {
		case VerticalAltitude:
			feet, err := strconv.Atoi(m[1])
			if err != nil {
				return VerticalLimit{}, false
			}
			return VerticalLimit{Kind: VerticalAltitude, Feet: feet, AboveGroundLevel: m[2] == "AGL"}, true
		case VerticalLevel:
			if m[1] == "" {
				return Surface, true
			}
			level, err := strconv.Atoi(m[1])
			if err != nil {
				return VerticalLimit{}, false
			}
			return VerticalLimit{Kind: VerticalLevel, FlightLevel: level}, true
		}
	}
	return VerticalLimit{}, false
}
