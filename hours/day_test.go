package hours

import (
	"testing"
	"time"
)

func TestDayString(t *testing.T) {
	d := Day{Year: 2025, Month: time.January, Day: 5}
	expected := "2025-01-05"
	if s := d.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-10-03")
	if err != nil {
		t.Fatalf("ParseDay() unexpected error: %v", err)
	}
	expected := Day{Year: 2025, Month: time.October, Day: 3}
	if d != expected {
		t.Errorf("ParseDay() expected %+v, got %+v", expected, d)
	}

	for _, invalid := range []string{"", "2025-13-01", "03-10-2025", "2025/10/03", "today"} {
		if _, err := ParseDay(invalid); err == nil {
			t.Errorf("ParseDay(%q) expected an error", invalid)
		}
	}
}

func TestDayAddDays(t *testing.T) {
	tests := []struct {
		name     string
		input    Day
		addDays  int
		expected Day
	}{
		{
			name:     "add within same month",
			input:    Day{Year: 2025, Month: time.January, Day: 10},
			addDays:  1,
			expected: Day{Year: 2025, Month: time.January, Day: 11},
		},
		{
			name:     "add crossing new year",
			input:    Day{Year: 2024, Month: time.December, Day: 31},
			addDays:  1,
			expected: Day{Year: 2025, Month: time.January, Day: 1},
		},
		{
			name:     "add negative days",
			input:    Day{Year: 2025, Month: time.March, Day: 1},
			addDays:  -1,
			expected: Day{Year: 2025, Month: time.February, Day: 28},
		},
		{
			name:     "add across dst switch",
			input:    Day{Year: 2025, Month: time.March, Day: 30},
			addDays:  1,
			expected: Day{Year: 2025, Month: time.March, Day: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.AddDays(tt.addDays)
			if result != tt.expected {
				t.Errorf("AddDays(%d) expected %+v, got %+v", tt.addDays, tt.expected, result)
			}
		})
	}
}

func TestDayHours(t *testing.T) {
	tests := []struct {
		day      Day
		expected int
	}{
		{Day{Year: 2025, Month: time.January, Day: 1}, 24},
		{Day{Year: 2025, Month: time.March, Day: 30}, 23},
		{Day{Year: 2025, Month: time.October, Day: 26}, 25},
	}

	for _, tt := range tests {
		if h := tt.day.Hours(); h != tt.expected {
			t.Errorf("%s: Hours() expected %d, got %d", tt.day, tt.expected, h)
		}
	}
}

func TestDayStartAndEnd(t *testing.T) {
	d := Day{Year: 2025, Month: time.July, Day: 1}
	start := d.Start()
	if !start.Equal(time.Date(2025, time.June, 30, 22, 0, 0, 0, time.UTC)) {
		t.Errorf("Start() expected local midnight, got %v", start.UTC())
	}
	if end := d.End(); end.Sub(start) != 24*time.Hour {
		t.Errorf("End() expected 24h after start, got %v", end.Sub(start))
	}
}

func TestFromTime(t *testing.T) {
	// 23:30 UTC is already the next day in Stockholm.
	tm := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC)
	d := FromTime(tm)
	expected := Day{Year: 2025, Month: time.January, Day: 2}
	if d != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, d)
	}

	if !FromTime(time.Time{}).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero Day")
	}
}

func TestTomorrowPublished(t *testing.T) {
	today := Day{Year: 2025, Month: time.October, Day: 3}
	morning := time.Date(2025, time.October, 3, 9, 0, 0, 0, stockholmLoc)
	afternoon := time.Date(2025, time.October, 3, 13, 0, 0, 0, stockholmLoc)

	if today.TomorrowPublished(morning) {
		t.Errorf("expected tomorrow not to be published before 13")
	}
	if !today.TomorrowPublished(afternoon) {
		t.Errorf("expected tomorrow to be published at 13")
	}
	if !today.AddDays(-1).TomorrowPublished(morning) {
		t.Errorf("expected a past day to always have tomorrow published")
	}
	if today.AddDays(1).TomorrowPublished(afternoon) {
		t.Errorf("expected a future day never to have tomorrow published")
	}
}

func TestHourRange(t *testing.T) {
	start := time.Date(2025, time.January, 1, 23, 0, 0, 0, stockholmLoc)
	if r := HourRange(start, start.Add(time.Hour)); r != "23-00" {
		t.Errorf("HourRange() expected %q, got %q", "23-00", r)
	}
	if r := ClockRange(start, start.Add(15*time.Minute)); r != "23:00-23:15" {
		t.Errorf("ClockRange() expected %q, got %q", "23:00-23:15", r)
	}
}

func TestLocationStockholm(t *testing.T) {
	tmWinter := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	_, offsetWinter := LocationStockholm(tmWinter).Zone()
	if offsetWinter != 3600 {
		t.Errorf("LocationStockholm() on winter date expected offset 3600 seconds, got %d", offsetWinter)
	}

	tmSummer := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
	_, offsetSummer := LocationStockholm(tmSummer).Zone()
	if offsetSummer != 7200 {
		t.Errorf("LocationStockholm() on summer date expected offset 7200 seconds, got %d", offsetSummer)
	}
}

func TestFromIso(t *testing.T) {
	parsed := FromIso("2025-01-01T15:00:00+01:00")
	expected := time.Date(2025, time.January, 1, 14, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Errorf("FromIso() expected %v, got %v", expected, parsed)
	}
	if IsoString(parsed) != "2025-01-01T14:00:00Z" {
		t.Errorf("IsoString() expected UTC string, got %q", IsoString(parsed))
	}
	if !FromIso("not a valid iso date").IsZero() {
		t.Errorf("FromIso() expected zero time for an invalid date string")
	}
}
