package hours

import (
	"fmt"
	"time"
)

// HourRange formats a slot as "HH-HH" in local time, e.g. "23-00".
func HourRange(start, end time.Time) string {
	return fmt.Sprintf("%02d-%02d", start.In(stockholmLoc).Hour(), end.In(stockholmLoc).Hour())
}

// ClockRange formats a slot as "HH:MM-HH:MM" in local time.
func ClockRange(start, end time.Time) string {
	s := start.In(stockholmLoc)
	e := end.In(stockholmLoc)
	return fmt.Sprintf("%02d:%02d-%02d:%02d", s.Hour(), s.Minute(), e.Hour(), e.Minute())
}

func LocationStockholm(t time.Time) time.Time {
	return t.In(stockholmLoc)
}

func FromIso(str string) time.Time {
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func IsoString(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
