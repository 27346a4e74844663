package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekly(entries map[DayOfWeek][]TimeRange) WeeklySchedule {
	var w WeeklySchedule
	for day, ranges := range entries {
		w[day] = ranges
	}
	return w
}

func onDays(ds []DayOfWeek, r TimeRange) map[DayOfWeek][]TimeRange {
	out := make(map[DayOfWeek][]TimeRange, len(ds))
	for _, d := range ds {
		out[d] = []TimeRange{r}
	}
	return out
}

var weekdays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

func TestParseOperatingHours_H24(t *testing.T) {
	for _, text := range []string{"H24", "Mon-Fri 0800-1700, H24 on request", "ATZ H24"} {
		t.Run(text, func(t *testing.T) {
			got, ok := ParseOperatingHours(text)
			require.True(t, ok)
			assert.True(t, got.Continuous)
			for day := Monday; day <= PublicHoliday; day++ {
				assert.Equal(t, []TimeRange{FullDay}, got.Regular.On(day), day.String())
				assert.Equal(t, []TimeRange{FullDay}, got.Seasonal.On(day), day.String())
			}
		})
	}
}

func TestParseOperatingHours_WeekdayRange(t *testing.T) {
	got, ok := ParseOperatingHours("Mon-Fri 0800-1630")
	require.True(t, ok)

	want := OperatingSchedule{
		Regular: weekly(onDays(weekdays, TimeRange{Open: Clock(8, 0), Close: Clock(16, 30)})),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("schedule mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.Regular.On(Saturday))
	assert.Empty(t, got.Regular.On(Sunday))
	assert.Empty(t, got.Regular.On(PublicHoliday))
}

func TestParseOperatingHours_SeasonalPostfix(t *testing.T) {
	got, ok := ParseOperatingHours("Mon-Fri 0800-1630 (Summer) 0700-1600 (Winter)")
	require.True(t, ok)

	want := OperatingSchedule{
		Regular:  weekly(onDays(weekdays, TimeRange{Open: Clock(7, 0), Close: Clock(16, 0)})),
		Seasonal: weekly(onDays(weekdays, TimeRange{Open: Clock(8, 0), Close: Clock(16, 30)})),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOperatingHours(t *testing.T) {
	nineToFive := TimeRange{Open: Clock(9, 0), Close: Clock(17, 0)}

	tests := []struct {
		name string
		text string
		want OperatingSchedule
	}{
		{
			name: "prefix summer section",
			text: "Mon-Fri 0900-1700 (0800-1600)",
			want: OperatingSchedule{
				Regular:  weekly(onDays(weekdays, nineToFive)),
				Seasonal: weekly(onDays(weekdays, TimeRange{Open: Clock(8, 0), Close: Clock(16, 0)})),
			},
		},
		{
			name: "summer and winter words",
			text: "Winter: Sat 0900-1700 Summer: Sat 0800-1800",
			want: OperatingSchedule{
				Regular:  weekly(map[DayOfWeek][]TimeRange{Saturday: {nineToFive}}),
				Seasonal: weekly(map[DayOfWeek][]TimeRange{Saturday: {{Open: Clock(8, 0), Close: Clock(18, 0)}}}),
			},
		},
		{
			name: "several day ranges consumed in order",
			text: "Mon-Fri 0800-1700 Sat, Sun 1000-1600 1100-1500",
			want: OperatingSchedule{
				Regular: weekly(map[DayOfWeek][]TimeRange{
					Monday:    {{Open: Clock(8, 0), Close: Clock(17, 0)}},
					Tuesday:   {{Open: Clock(8, 0), Close: Clock(17, 0)}},
					Wednesday: {{Open: Clock(8, 0), Close: Clock(17, 0)}},
					Thursday:  {{Open: Clock(8, 0), Close: Clock(17, 0)}},
					Friday:    {{Open: Clock(8, 0), Close: Clock(17, 0)}},
					Saturday:  {{Open: Clock(10, 0), Close: Clock(16, 0)}},
					Sunday:    {{Open: Clock(11, 0), Close: Clock(15, 0)}},
				}),
			},
		},
		{
			name: "shared time range covers every listed day range",
			text: "Mon-Fri, Sat 0800-1600",
			want: OperatingSchedule{
				Regular: weekly(onDays(
					[]DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
					TimeRange{Open: Clock(8, 0), Close: Clock(16, 0)},
				)),
			},
		},
		{
			name: "days accumulate ranges",
			text: "Mon-Fri 0800-1200 Mon-Fri 1300-1700",
			want: OperatingSchedule{
				Regular: weekly(map[DayOfWeek][]TimeRange{
					Monday:    {{Open: Clock(8, 0), Close: Clock(12, 0)}, {Open: Clock(13, 0), Close: Clock(17, 0)}},
					Tuesday:   {{Open: Clock(8, 0), Close: Clock(12, 0)}, {Open: Clock(13, 0), Close: Clock(17, 0)}},
					Wednesday: {{Open: Clock(8, 0), Close: Clock(12, 0)}, {Open: Clock(13, 0), Close: Clock(17, 0)}},
					Thursday:  {{Open: Clock(8, 0), Close: Clock(12, 0)}, {Open: Clock(13, 0), Close: Clock(17, 0)}},
					Friday:    {{Open: Clock(8, 0), Close: Clock(12, 0)}, {Open: Clock(13, 0), Close: Clock(17, 0)}},
				}),
			},
		},
		{
			name: "range wraps past Sunday",
			text: "Fri-Mon 1000-1400",
			want: OperatingSchedule{
				Regular: weekly(onDays(
					[]DayOfWeek{Friday, Saturday, Sunday, Monday},
					TimeRange{Open: Clock(10, 0), Close: Clock(14, 0)},
				)),
			},
		},
		{
			name: "public holidays and sunset",
			text: "Sat & PH 0900-SS",
			want: OperatingSchedule{
				Regular: weekly(onDays(
					[]DayOfWeek{Saturday, PublicHoliday},
					TimeRange{Open: Clock(9, 0), Close: Sunset},
				)),
			},
		},
		{
			name: "times without days apply to every day",
			text: "0600-2400",
			want: OperatingSchedule{
				Regular: weekly(onDays(allDays, TimeRange{Open: Clock(6, 0), Close: EndOfDay})),
			},
		},
		{
			name: "daylight only",
			text: "Daylight hours. Mon-Fri 0900-1700",
			want: OperatingSchedule{
				DaylightOnly: true,
				Regular:      weekly(onDays(weekdays, nineToFive)),
			},
		},
		{
			name: "invalid clock time is ignored",
			text: "Mon 0900-2500-1700",
			want: OperatingSchedule{
				Regular: weekly(map[DayOfWeek][]TimeRange{Monday: {nineToFive}}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOperatingHours(tt.text)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseOperatingHours(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

// Dangling day selectors and half-filled time pairs are dropped without
// error. The publication has no end-of-schedule marker, so these are kept
// as tolerated quirks rather than reported.
func TestParseOperatingHours_DroppedFragments(t *testing.T) {
	t.Run("dangling selector contributes nothing", func(t *testing.T) {
		got, ok := ParseOperatingHours("Mon-Fri 0800-1600 Sat")
		require.True(t, ok)
		assert.Empty(t, got.Regular.On(Saturday))
		assert.Len(t, got.Regular.On(Friday), 1)
	})

	t.Run("selector with only a single time", func(t *testing.T) {
		got, ok := ParseOperatingHours("Sat 0900 Sun 1000-1500")
		require.True(t, ok)
		assert.Empty(t, got.Regular.On(Saturday))
		assert.Equal(t, []TimeRange{{Open: Clock(10, 0), Close: Clock(15, 0)}}, got.Regular.On(Sunday))
	})

	t.Run("half-filled pair at end of input", func(t *testing.T) {
		got, ok := ParseOperatingHours("Mon 0900-1700 1800")
		require.True(t, ok)
		assert.Equal(t, []TimeRange{{Open: Clock(9, 0), Close: Clock(17, 0)}}, got.Regular.On(Monday))
	})

	t.Run("selector alone still counts as a schedule", func(t *testing.T) {
		got, ok := ParseOperatingHours("Mon-Fri")
		require.True(t, ok)
		assert.True(t, got.Regular.IsEmpty())
		assert.True(t, got.Seasonal.IsEmpty())
	})
}

func TestParseOperatingHours_NoSchedule(t *testing.T) {
	for _, text := range []string{"", "   ", "By arrangement", "O/R"} {
		t.Run(text, func(t *testing.T) {
			got, ok := ParseOperatingHours(text)
			assert.False(t, ok)
			assert.Equal(t, OperatingSchedule{}, got)
		})
	}
}

func TestParseOperatingHours_Idempotent(t *testing.T) {
	const text = "Mon-Fri 0800-1630 (Summer) 0700-1600 (Winter) Sat & PH 0900-SS"
	first, ok := ParseOperatingHours(text)
	require.True(t, ok)
	second, ok := ParseOperatingHours(text)
	require.True(t, ok)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated parse differs (-first +second):\n%s", diff)
	}
}

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  TimeOfDay
		ok    bool
	}{
		{"morning", "0830", Clock(8, 30), true},
		{"midnight", "0000", Midnight, true},
		{"end of day", "2400", EndOfDay, true},
		{"sunset", "SS", Sunset, true},
		{"past end of day", "2401", 0, false},
		{"invalid minute", "1260", 0, false},
		{"invalid hour", "2500", 0, false},
		{"too short", "830", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseHHMM(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOperatingScheduleJSON(t *testing.T) {
	in, ok := ParseOperatingHours("Mon-Fri 0800-1630 (Summer) 0700-1600 (Winter) Sat & PH 0900-SS")
	require.True(t, ok)

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Mon":[{"open":"08:00","close":"16:30"}]`)
	assert.Contains(t, string(b), `"PH":[{"open":"09:00","close":"SS"}]`)

	var out OperatingSchedule
	require.NoError(t, json.Unmarshal(b, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("JSON round trip mismatch (-in +out):\n%s", diff)
	}
}
