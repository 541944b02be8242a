package importer

import (
	"errors"

	"github.com/magiccup/fantastat/internal/league"
	"github.com/magiccup/fantastat/internal/metrics"
)

// ErrMissingDayNumber is returned when an evaluation filename contains no
// extractable matchday number.
var ErrMissingDayNumber = errors.New("filename has no day number")

// Importer reconciles pipe-delimited import files against the store.
type Importer struct {
	store   league.LeagueStore
	metrics metrics.Metrics
}

// New creates a new Importer.
func New(store league.LeagueStore, metricsSvc metrics.Metrics) *Importer {
	return &Importer{
		store:   store,
		metrics: metricsSvc,
	}
}

// ProgressFunc reports that done of total lines have been processed.
type ProgressFunc func(done, total int)

// Report is the outcome of a single import run. Lines that failed to parse
// are collected in Errors; the run continues past them.
type Report struct {
	BatchID   string      `json:"batch_id"`
	Day       int         `json:"day,omitempty"`
	Total     int         `json:"total"`
	Created   int         `json:"created"`
	Updated   int         `json:"updated"`
	Unchanged int         `json:"unchanged"`
	Errors    []LineError `json:"errors,omitempty"`
}

// LineError records a single import line that could not be processed.
type LineError struct {
	Line int    `json:"line"`
	Text string `json:"text"`
	Err  string `json:"error"`
}

// record is one parsed import line.
type record struct {
	code      int
	name      string
	realTeam  string
	fantaVote float64
	vote      float64
	cost      int
}
