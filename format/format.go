// Package format renders metrics record for humans and machines.
package format

import (
	"errors"
	"fmt"
	"io"

	"stylestats/common"
	"stylestats/metrics"
)

// ErrNoTemplate is returned when template format is requested without
// template text.
var ErrNoTemplate = errors.New("template format requires template")

// Options control rendering.
type Options struct {
	Format   common.OutputFmt
	Template string // template text for template format
	Prettify bool   // labels and human readable values for json and csv
	Style    common.TableStyle
	Color    bool
}

// Render writes record in requested format.
func Render(w io.Writer, rec *metrics.Record, opts Options) error {
	switch opts.Format {
	case common.OutputFmtTable:
		return Table(w, rec, opts.Style, opts.Color)
	case common.OutputFmtJson:
		return JSON(w, rec, opts.Prettify)
	case common.OutputFmtCsv:
		return CSV(w, rec, opts.Prettify)
	case common.OutputFmtHtml:
		return HTML(w, rec)
	case common.OutputFmtMd:
		return Markdown(w, rec)
	case common.OutputFmtTemplate:
		if opts.Template == "" {
			return ErrNoTemplate
		}
		return Template(w, rec, opts.Template)
	default:
		return fmt.Errorf("unsupported output format %s", opts.Format)
	}
}
