package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/devpulse/devpulse/internal/config"
	"github.com/devpulse/devpulse/internal/model"
	"github.com/devpulse/devpulse/internal/output"
	"github.com/devpulse/devpulse/internal/store"
)

// windowLayout is the date format accepted by --from / --to flags.
const windowLayout = "2006-01-02"

// setup loads configuration and applies global output flags.
func setup() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}

	return cfg, nil
}

// openStore opens the metric store at the configured path.
func openStore(cfg *config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// parseWindow builds a closed window from --from / --to values. An empty
// "to" defaults to today; an empty "from" defaults to windowDays before
// the end. The end bound is pushed to the last millisecond of its day.
func parseWindow(from, to string, windowDays int) (model.Window, error) {
	var w model.Window

	if to == "" {
		w.End = model.DayEnd(time.Now())
	} else {
		t, err := time.Parse(windowLayout, to)
		if err != nil {
			return w, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", to)
		}
		w.End = model.DayEnd(t)
	}

	if from == "" {
		w.Start = model.DayStart(w.End).AddDate(0, 0, -(windowDays - 1))
	} else {
		t, err := time.Parse(windowLayout, from)
		if err != nil {
			return w, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", from)
		}
		w.Start = model.DayStart(t)
	}

	if w.Start.After(w.End) {
		return w, fmt.Errorf("window start %s is after end %s", from, to)
	}

	return w, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
