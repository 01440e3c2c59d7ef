package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/icodeforyou/spotprice-go/hours"
	"github.com/icodeforyou/spotprice-go/optimize"
	"github.com/icodeforyou/spotprice-go/report"
	"github.com/icodeforyou/spotprice-go/types"
)

var ErrUsage = errors.New("usage error")

const (
	msgMissingZone = "Du måste skriva --zone SE1-4"
	msgInvalidZone = "Ogiltig zon. Välj SE1, SE2, SE3 eller SE4."
	msgInvalidDate = "Fel datum. Använd: yyyy-MM-dd"
)

type Options struct {
	Zone types.Zone
	// Zero means today in Europe/Stockholm
	Date   hours.Day
	Sorted bool
	// Zero when no charging window is requested
	ChargingHours int
	ConfigPath    string
	// Empty means the configured format
	Format string
	Watch  bool
}

func Usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: spotprice [options]")
	fmt.Fprintln(w, "--zone SE1|SE2|SE3|SE4   (required)")
	fmt.Fprintln(w, "--date YYYY-MM-DD        (optional, defaults to current date)")
	fmt.Fprintln(w, "--sorted                 (optional, sort descending by price)")
	fmt.Fprintln(w, "--charging 2h|4h|8h      (optional, find optimal charging window)")
	fmt.Fprintln(w, "--format text|json|yaml  (optional, defaults to text)")
	fmt.Fprintln(w, "--config PATH            (optional, path to config file)")
	fmt.Fprintln(w, "--watch                  (optional, keep running and prefetch prices daily)")
	fmt.Fprintln(w, "--help                   (optional, display this help message)")
}

func usageError(msg string) error {
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}

// UsageMessage returns the message of a usage error without the sentinel prefix.
func UsageMessage(err error) string {
	if msg, ok := strings.CutPrefix(err.Error(), ErrUsage.Error()+": "); ok {
		return msg
	}
	return err.Error()
}

// ParseArgs parses the command line. It prints the usage to output and returns
// flag.ErrHelp when --help is given, and returns an error wrapping ErrUsage for
// invalid input.
func ParseArgs(args []string, output io.Writer) (Options, error) {
	fs := flag.NewFlagSet("spotprice", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	zone := fs.String("zone", "", "price zone SE1|SE2|SE3|SE4")
	date := fs.String("date", "", "date YYYY-MM-DD")
	sorted := fs.Bool("sorted", false, "sort descending by price")
	charging := fs.String("charging", "", "charging window 2h|4h|8h")
	format := fs.String("format", "", "output format text|json|yaml")
	configPath := fs.String("config", "", "path to config file")
	watch := fs.Bool("watch", false, "keep running and prefetch prices daily")
	help := fs.Bool("help", false, "display this help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			Usage(output)
			return Options{}, err
		}
		return Options{}, usageError(err.Error())
	}
	if *help {
		Usage(output)
		return Options{}, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return Options{}, usageError(fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}

	opts := Options{
		Sorted:     *sorted,
		ConfigPath: *configPath,
		Format:     *format,
		Watch:      *watch,
	}

	switch {
	case *zone != "":
		z, err := types.ParseZone(*zone)
		if err != nil {
			return Options{}, usageError(msgInvalidZone)
		}
		opts.Zone = z
	case !opts.Watch:
		return Options{}, usageError(msgMissingZone)
	}

	if *date != "" {
		d, err := hours.ParseDay(*date)
		if err != nil {
			return Options{}, usageError(msgInvalidDate)
		}
		opts.Date = d
	}

	if *charging != "" {
		h, err := optimize.ParseWindowHours(*charging)
		if err != nil {
			return Options{}, usageError(report.MsgInvalidCharging)
		}
		opts.ChargingHours = h
	}

	if opts.Format != "" {
		if _, err := report.ParseFormat(opts.Format); err != nil {
			return Options{}, usageError(err.Error())
		}
	}

	return opts, nil
}
