package report

import (
	"io"
	"strings"

	"github.com/icodeforyou/spotprice-go/convert"
	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	msgTodayOnly       = "Du får vänta tills efter 13 för att få morgondagens priser, skriver endast ut dagens priser:"
	msgNoPrices        = "Inga priser hittades för %s i zon %s"
	msgInsufficient    = "Påbörja laddning kunde inte beräknas – inte tillräckligt med priser."
	MsgInvalidCharging = "Påbörja laddning kunde inte beräknas – ogiltig laddningstid, använd 2h, 4h eller 8h."
)

type textWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (t *textWriter) line(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = t.p.Fprintf(t.w, format+"\n", args...)
}

// ore formats two decimals with the locale's decimal mark, no grouping and an
// ASCII minus sign.
func (t *textWriter) ore(sek float64) string {
	s := t.p.Sprint(number.Decimal(convert.Ore(sek), number.Scale(2), number.NoSeparator()))
	return strings.ReplaceAll(s, "\u2212", "-") + " öre"
}

func (k DayKind) label() string {
	if k == Tomorrow {
		return "Morgondagens"
	}
	return "Dagens"
}

// WriteText prints the report in Swedish with numbers formatted for lang.
func WriteText(w io.Writer, r Report, lang language.Tag) error {
	t := &textWriter{w: w, p: message.NewPrinter(lang)}

	if r.TodayOnly {
		t.line(msgTodayOnly)
	}
	for _, d := range r.Days {
		if !r.TodayOnly {
			t.line("")
			t.line("%s priser:", d.Kind.label())
		}
		t.prices(r.Zone, d)
		if d.Statistics != nil {
			t.line("%s statistik:", d.Kind.label())
			t.line("Högsta pris: %s %s", hours.HourRange(d.Statistics.Max.TimeStart, d.Statistics.Max.TimeEnd), t.ore(d.Statistics.Max.Price))
			t.line("Lägsta pris: %s %s", hours.HourRange(d.Statistics.Min.TimeStart, d.Statistics.Min.TimeEnd), t.ore(d.Statistics.Min.Price))
			t.line("Medelpris: %s", t.ore(d.Statistics.Average))
		}
	}
	if r.Charging != nil {
		t.charging(r.Charging)
	}
	return t.err
}

func (t *textWriter) prices(zone types.Zone, d DayPrices) {
	if len(d.Prices) == 0 {
		t.line(msgNoPrices, d.Day.String(), zone.String())
		return
	}
	for _, p := range d.Prices {
		t.line("%s %s", hours.HourRange(p.TimeStart, p.TimeEnd), t.ore(p.Price))
	}
}

func (t *textWriter) charging(c *Charging) {
	if c.Insufficient {
		t.line(msgInsufficient)
		return
	}
	if c.Window == nil {
		return
	}
	t.line("Beräknar optimalt laddningsfönster:")
	t.line("Påbörja laddning för %d timmar:", c.Hours)
	for _, p := range c.Window.Samples {
		t.line("kl %s: %s", hours.ClockRange(p.TimeStart, p.TimeEnd), t.ore(p.Price))
	}
	t.line("Totalt pris för fönstret: %s", t.ore(c.Window.TotalCost))
	t.line("Medelpris för fönster: %s", t.ore(c.Window.AverageCost))
}
