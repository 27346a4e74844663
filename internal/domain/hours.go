package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DayOfWeek indexes a WeeklySchedule. Mon..Sun form a cycle; PublicHoliday
// is an independent eighth slot.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	PublicHoliday
)

const daysInSchedule = 8

var dayNames = [daysInSchedule]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "PH"}

func (d DayOfWeek) String() string {
	if d < 0 || int(d) >= daysInSchedule {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

func parseDay(name string) (DayOfWeek, bool) {
	for i, n := range dayNames {
		if n == name {
			return DayOfWeek(i), true
		}
	}
	return 0, false
}

// TimeOfDay is minutes after midnight, 0 to 1440 inclusive so a range can
// close at 24:00. Sunset is an unresolved placeholder for "SS".
type TimeOfDay int

const (
	Midnight  TimeOfDay = 0
	EndOfDay  TimeOfDay = 24 * 60
	Sunset    TimeOfDay = -1
	noTimeYet TimeOfDay = -2
)

// Clock builds a TimeOfDay from hours and minutes.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) String() string {
	if t == Sunset {
		return "SS"
	}
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	if t != Sunset && (t < Midnight || t > EndOfDay) {
		return nil, fmt.Errorf("time of day %d out of range", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "SS" {
		*t = Sunset
		return nil
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return fmt.Errorf("parse time of day %q: %w", s, err)
	}
	*t = Clock(h, m)
	return nil
}

// parseHHMM decodes a four-digit eAIP time token, e.g. "1630". "2400" is
// accepted as the end of the day.
func parseHHMM(token string) (TimeOfDay, bool) {
	if token == "SS" {
		return Sunset, true
	}
	if len(token) != 4 {
		return 0, false
	}
	hour, errH := strconv.Atoi(token[:2])
	mins, errM := strconv.Atoi(token[2:])
	if errH != nil || errM != nil || mins > 59 || hour > 24 || (hour == 24 && mins != 0) {
		return 0, false
	}
	return Clock(hour, mins), true
}

// TimeRange is one opening period within a day.
type TimeRange struct {
	Open  TimeOfDay `json:"open"`
	Close TimeOfDay `json:"close"`
}

// FullDay is the range used for H24 operation.
var FullDay = TimeRange{Open: Midnight, Close: EndOfDay}

// WeeklySchedule holds the ranges for each DayOfWeek. A day without hours
// has no ranges.
type WeeklySchedule [daysInSchedule][]TimeRange

// On returns the ranges recorded for day.
func (w WeeklySchedule) On(day DayOfWeek) []TimeRange {
	return w[day]
}

// IsEmpty reports whether no day holds any range.
func (w WeeklySchedule) IsEmpty() bool {
	for _, ranges := range w {
		if len(ranges) > 0 {
			return false
		}
	}
	return true
}

func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string][]TimeRange, daysInSchedule)
	for i, ranges := range w {
		if len(ranges) > 0 {
			out[dayNames[i]] = ranges
		}
	}
	return json.Marshal(out)
}

func (w *WeeklySchedule) UnmarshalJSON(b []byte) error {
	var in map[string][]TimeRange
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*w = WeeklySchedule{}
	for name, ranges := range in {
		day, ok := parseDay(name)
		if !ok {
			return fmt.Errorf("unknown day %q", name)
		}
		w[day] = ranges
	}
	return nil
}

// OperatingSchedule is the parsed form of an eAIP hours cell. Seasonal
// holds the summer timetable; Regular holds everything else.
type OperatingSchedule struct {
	Regular      WeeklySchedule `json:"regular"`
	Seasonal     WeeklySchedule `json:"seasonal"`
	Continuous   bool           `json:"continuous"`
	DaylightOnly bool           `json:"daylight_only"`
}

// hoursTokenRe lists the token kinds in priority order: H24, daylight,
// season words, day selectors, time tokens, parentheses.
var hoursTokenRe = regexp.MustCompile(
	`(H24)|(?i:(daylight))|(Summer)|(Winter)|` +
		`((?:\b(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun|PH)\b(?:-|, | & | and )?)+)|` +
		`\b(\d{4}|SS)\b|(\()|(\))`,
)

var daySeparatorRe = regexp.MustCompile(`, | and | & `)

type hoursTokenKind int

const (
	tokenContinuous hoursTokenKind = iota + 1
	tokenDaylight
	tokenSummer
	tokenWinter
	tokenDays
	tokenTime
	tokenOpenParen
	tokenCloseParen
)

type hoursToken struct {
	kind hoursTokenKind
	text string
}

func tokenizeHours(text string) []hoursToken {
	matches := hoursTokenRe.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]hoursToken, 0, len(matches))
	for _, m := range matches {
		// Capture group g (1-based) sits at m[2g], m[2g+1].
		for g := 1; g <= int(tokenCloseParen); g++ {
			if m[2*g] >= 0 {
				tokens = append(tokens, hoursToken{kind: hoursTokenKind(g), text: text[m[2*g]:m[2*g+1]]})
				break
			}
		}
	}
	return tokens
}

// parseDaySelector expands "Mon-Fri, Sat & PH" into ordered day ranges.
func parseDaySelector(selector string) [][]DayOfWeek {
	var ranges [][]DayOfWeek
	for _, item := range daySeparatorRe.Split(selector, -1) {
		item = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(item), "-"))
		if item == "" {
			continue
		}
		bounds := strings.SplitN(item, "-", 2)
		first, ok := parseDay(bounds[0])
		if !ok {
			continue
		}
		if len(bounds) == 1 {
			ranges = append(ranges, []DayOfWeek{first})
			continue
		}
		last, ok := parseDay(bounds[1])
		if !ok {
			ranges = append(ranges, []DayOfWeek{first})
			continue
		}
		ranges = append(ranges, expandDayRange(first, last))
	}
	return ranges
}

// expandDayRange walks Mon..Sun cyclically, so Fri-Mon is Fri, Sat, Sun, Mon.
// PublicHoliday never takes part in the cycle; a range touching it yields
// just its two ends.
func expandDayRange(first, last DayOfWeek) []DayOfWeek {
	if first == PublicHoliday || last == PublicHoliday {
		if first == last {
			return []DayOfWeek{first}
		}
		return []DayOfWeek{first, last}
	}
	days := []DayOfWeek{first}
	for d := first; d != last; {
		d = (d + 1) % 7
		days = append(days, d)
	}
	return days
}

var allDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday, PublicHoliday}

// assignment is one committed time range and the days it covers.
type assignment struct {
	days     []DayOfWeek
	span     TimeRange
	seasonal bool
}

// hoursScanner carries the state of a single left-to-right token scan.
type hoursScanner struct {
	tokens []hoursToken

	inSummer  bool
	daylight  bool
	pending   [][]DayOfWeek
	lastDays  []DayOfWeek
	slots     [2]TimeOfDay
	groupLast *assignment

	assignments []*assignment
	labelled    int // assignments[:labelled] already carry a postfix season label
}

// ParseOperatingHours converts an eAIP hours description such as
// "Mon-Fri 0800-1630 (Summer) 0700-1600 (Winter)" into an
// OperatingSchedule. It returns false when the text holds no recognisable
// schedule token at all.
func ParseOperatingHours(text string) (OperatingSchedule, bool) {
	tokens := tokenizeHours(text)
	if len(tokens) == 0 {
		return OperatingSchedule{}, false
	}

	s := &hoursScanner{
		tokens:   tokens,
		lastDays: allDays,
		slots:    [2]TimeOfDay{noTimeYet, noTimeYet},
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.kind {
		case tokenContinuous:
			return continuousSchedule(s.daylight), true
		case tokenDaylight:
			s.daylight = true
		case tokenSummer:
			s.inSummer = true
		case tokenWinter:
			s.inSummer = false
		case tokenOpenParen:
			i += s.openParen(i)
		case tokenCloseParen:
			s.inSummer = false
		case tokenDays:
			s.closeGroup()
			s.pending = parseDaySelector(tok.text)
			s.slots = [2]TimeOfDay{noTimeYet, noTimeYet}
		case tokenTime:
			s.addTime(tok.text)
		}
	}
	s.closeGroup()

	return s.schedule(), true
}

// openParen handles "(" at index i and returns how many extra tokens it
// consumed. "(Summer)" or "(Winter)" right after completed ranges labels
// those ranges; any other "(" opens the summer section.
func (s *hoursScanner) openParen(i int) int {
	if i+2 < len(s.tokens) && s.tokens[i+2].kind == tokenCloseParen {
		word := s.tokens[i+1].kind
		if (word == tokenSummer || word == tokenWinter) && s.labelled < len(s.assignments) {
			for _, a := range s.assignments[s.labelled:] {
				a.seasonal = word == tokenSummer
			}
			s.labelled = len(s.assignments)
			return 2
		}
	}
	s.inSummer = true
	return 0
}

func (s *hoursScanner) addTime(token string) {
	t, ok := parseHHMM(token)
	if !ok {
		return
	}
	if s.slots[0] == noTimeYet {
		s.slots[0] = t
		return
	}
	s.slots[1] = t

	days := s.lastDays
	if len(s.pending) > 0 {
		days = s.pending[0]
		s.pending = s.pending[1:]
	}
	s.lastDays = days

	a := &assignment{
		days:     append([]DayOfWeek(nil), days...),
		span:     TimeRange{Open: s.slots[0], Close: s.slots[1]},
		seasonal: s.inSummer,
	}
	s.assignments = append(s.assignments, a)
	s.groupLast = a
	s.slots = [2]TimeOfDay{noTimeYet, noTimeYet}
}

// closeGroup ends the current day-selector group. Ranges still queued go to
// the group's last pair; a group that never completed a pair adds nothing.
func (s *hoursScanner) closeGroup() {
	if s.groupLast != nil {
		for _, days := range s.pending {
			s.groupLast.days = append(s.groupLast.days, days...)
		}
	}
	s.pending = nil
	s.groupLast = nil
}

func (s *hoursScanner) schedule() OperatingSchedule {
	out := OperatingSchedule{DaylightOnly: s.daylight}
	for _, a := range s.assignments {
		target := &out.Regular
		if a.seasonal {
			target = &out.Seasonal
		}
		for _, day := range a.days {
			target[day] = append(target[day], a.span)
		}
	}
	return out
}

func continuousSchedule(daylight bool) OperatingSchedule {
	out := OperatingSchedule{Continuous: true, DaylightOnly: daylight}
	for day := range out.Regular {
		out.Regular[day] = []TimeRange{FullDay}
		out.Seasonal[day] = []TimeRange{FullDay}
	}
	return out
}
