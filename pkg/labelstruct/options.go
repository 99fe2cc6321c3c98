// Package labelstruct extracts label import rows from cutting plans workbooks.
package labelstruct

import (
	"log/slog"
	"time"

	"github.com/ukaji3/labelstruct-go/pkg/labelstruct/parser"
)

// Options configures extraction behavior.
type Options struct {
	// SheetMarkers are substrings identifying the import sheet.
	// If empty, parser.DefaultSheetMarkers is used.
	SheetMarkers []string
	// Layout is the cell layout to scan.
	// If nil, parser.DefaultLayout is used.
	Layout *parser.Layout
	// Now returns the current time, used for unreadable dates.
	Now func() time.Time
	// Logger receives extraction warnings. If nil, slog.Default is used.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		SheetMarkers: parser.DefaultSheetMarkers,
		Now:          time.Now,
	}
}

func (o Options) markers() []string {
	if len(o.SheetMarkers) == 0 {
		return parser.DefaultSheetMarkers
	}
	return o.SheetMarkers
}

func (o Options) layout() parser.Layout {
	if o.Layout == nil {
		return parser.DefaultLayout()
	}
	return *o.Layout
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
