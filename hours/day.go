package hours

import (
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	// Hour at which the day-ahead prices for tomorrow are published (local time).
	PublicationHour = 13
)

var stockholmLoc *time.Location

func init() {
	var err error
	stockholmLoc, err = time.LoadLocation("Europe/Stockholm")
	if err != nil {
		panic(fmt.Sprintf("failed to load Stockholm location: %v", err))
	}
}

func Stockholm() *time.Location {
	return stockholmLoc
}

// Day is a calendar day in the Swedish market timezone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDay(str string) (Day, error) {
	t, err := time.ParseInLocation(dateLayout, str, stockholmLoc)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", str, err)
	}
	return FromTime(t), nil
}

func FromTime(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	t = t.In(stockholmLoc)
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func Today(now time.Time) Day {
	return FromTime(now)
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

// Start returns local midnight.
func (d Day) Start() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, stockholmLoc)
}

// End returns the following local midnight.
func (d Day) End() time.Time {
	return d.AddDays(1).Start()
}

// Hours is 24, except on DST switch days (23 or 25).
func (d Day) Hours() int {
	return int(d.End().Sub(d.Start()) / time.Hour)
}

func (d Day) AddDays(days int) Day {
	return FromTime(time.Date(d.Year, d.Month, d.Day+days, 12, 0, 0, 0, stockholmLoc))
}

func (d Day) Compare(other Day) int {
	return d.Start().Compare(other.Start())
}

// TomorrowPublished reports if the prices for the day after d are expected to be
// available at the given time.
func (d Day) TomorrowPublished(now time.Time) bool {
	today := Today(now)
	if d.Compare(today) < 0 {
		return true
	}
	if d.Compare(today) > 0 {
		return false
	}
	return now.In(stockholmLoc).Hour() >= PublicationHour
}
