package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/foodweb/config"
)

// Files written into a session's output directory. The event log adds
// EventLogName when enabled.
const (
	TelemetryFileName  = "telemetry.csv"
	PerfFileName       = "perf.csv"
	BookmarksFileName  = "bookmarks.csv"
	ConfigFileName     = "config.yaml"
	HallOfFameFileName = "hall_of_fame.json"
)

// ErrOutputClosed is returned by writes after Close.
var ErrOutputClosed = errors.New("output manager closed")

// csvTable appends rows of one record type to a CSV file. The header goes
// out with the first row.
type csvTable[T any] struct {
	name   string
	f      *os.File
	header bool
}

func createTable[T any](dir, name string) (*csvTable[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable[T]{name: name, f: f}, nil
}

func (t *csvTable[T]) append(rows ...T) error {
	if t == nil {
		return ErrOutputClosed
	}
	if len(rows) == 0 {
		return nil
	}
	write := gocsv.MarshalWithoutHeaders
	if !t.header {
		write = gocsv.Marshal
	}
	if err := write(rows, t.f); err != nil {
		return fmt.Errorf("writing %s: %w", t.name, err)
	}
	t.header = true
	return nil
}

func (t *csvTable[T]) close() error {
	if t == nil {
		return nil
	}
	return t.f.Close()
}

// OutputManager owns everything a session writes to its output directory:
// the config snapshot taken at open, the per-window CSV tables, the
// optional event log and the hall of fame written at close.
//
// A nil *OutputManager is valid and discards everything, so callers need
// not check whether output is enabled.
type OutputManager struct {
	dir       string
	windows   *csvTable[WindowStats]
	perf      *csvTable[PerfStatsCSV]
	bookmarks *csvTable[Bookmark]
	events    *EventLog
}

// NewOutputManager creates dir, snapshots cfg into it and opens the CSV
// tables, plus the event log when eventLog is set. An empty dir disables
// output and returns nil.
func NewOutputManager(dir string, cfg *config.Config, eventLog bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if err := cfg.WriteYAML(filepath.Join(dir, ConfigFileName)); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.windows, err = createTable[WindowStats](dir, TelemetryFileName); err != nil {
		return nil, err
	}
	if om.perf, err = createTable[PerfStatsCSV](dir, PerfFileName); err == nil {
		om.bookmarks, err = createTable[Bookmark](dir, BookmarksFileName)
	}
	if err == nil && eventLog {
		om.events, err = NewEventLog(dir)
	}
	if err != nil {
		om.closeFiles()
		return nil, err
	}
	return om, nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// EventLogEnabled reports whether events are being recorded.
func (om *OutputManager) EventLogEnabled() bool {
	return om != nil && om.events != nil
}

// WriteWindow appends one flushed window to telemetry.csv and the matching
// phase timings to perf.csv.
func (om *OutputManager) WriteWindow(stats WindowStats, perf PerfStats) error {
	if om == nil {
		return nil
	}
	return errors.Join(
		om.windows.append(stats),
		om.perf.append(perf.ToCSV(stats.WindowEndTick)),
	)
}

// WriteBookmarks appends detected bookmarks to bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bms ...Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.append(bms...)
}

// WriteEvents appends to the event log. Without one it does nothing.
func (om *OutputManager) WriteEvents(events ...Event) error {
	if om == nil {
		return nil
	}
	if om.windows == nil {
		return ErrOutputClosed
	}
	return om.events.Write(events...)
}

// Close writes hof to hall_of_fame.json, when given, and closes every
// file. Later writes fail; a second Close is a no-op.
func (om *OutputManager) Close(hof *HallOfFame) error {
	if om == nil || om.windows == nil {
		return nil
	}
	var hofErr error
	if hof != nil {
		hofErr = writeHallOfFame(filepath.Join(om.dir, HallOfFameFileName), hof)
	}
	return errors.Join(hofErr, om.closeFiles())
}

func (om *OutputManager) closeFiles() error {
	err := errors.Join(
		om.windows.close(),
		om.perf.close(),
		om.bookmarks.close(),
		om.events.Close(),
	)
	om.windows, om.perf, om.bookmarks, om.events = nil, nil, nil, nil
	return err
}

func writeHallOfFame(path string, hof *HallOfFame) error {
	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", HallOfFameFileName, err)
	}
	return nil
}
