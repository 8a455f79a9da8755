// Package stats glues acquisition, parsing, analysis and output together.
package stats

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"stylestats/analyzer"
	"stylestats/common"
	"stylestats/css"
	"stylestats/metrics"
	"stylestats/source"
)

// Params are everything needed to produce metrics record.
type Params struct {
	Options   *analyzer.Options
	Request   source.FetcherConfig
	FileLimit int64
	// Now is used for published metric, time.Now when nil.
	Now func() time.Time
}

// Result is outcome of a single analysis.
type Result struct {
	Record     *metrics.Record
	Collection *source.Collection
	Stylesheet *css.Stylesheet
}

// Process classifies arguments, gathers CSS from all of them, parses it as a
// single stylesheet and assembles metrics record: source metrics first
// (published, paths, stylesheets, styleElements), then CSS metrics.
func Process(ctx context.Context, args []string, p Params, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if p.Options == nil {
		p.Options = analyzer.DefaultOptions()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	src, err := source.Classify(args, p.FileLimit, log)
	if err != nil {
		return nil, err
	}
	log.Debug("Sources classified",
		zap.Int("files", len(src.Files)),
		zap.Int("urls", len(src.URLs)),
		zap.Int("inline", len(src.Inline)))

	var fetcher *source.Fetcher
	if len(src.URLs) > 0 {
		if fetcher, err = source.NewFetcher(p.Request, nil, log); err != nil {
			return nil, fmt.Errorf("unable to prepare fetcher: %w", err)
		}
	}

	col, err := source.Collect(ctx, src, fetcher, p.FileLimit, log)
	if err != nil {
		return nil, err
	}

	sheet, err := css.NewParser(log).Parse([]byte(col.CSS()), strings.Join(col.Paths, ", "))
	if err != nil {
		return nil, err
	}
	for _, w := range sheet.Warnings {
		log.Warn("CSS problem", zap.String("details", w))
	}

	analysis, err := analyzer.New(p.Options, log).Analyze(sheet)
	if err != nil {
		return nil, fmt.Errorf("unable to analyze stylesheet: %w", err)
	}

	rec := metrics.New()
	if p.Options.Has(metrics.Published) {
		rec.Set(metrics.Published, now())
	}
	if p.Options.Has(metrics.Paths) && len(col.Paths) > 0 {
		rec.Set(metrics.Paths, col.Paths)
	}
	if p.Options.Has(metrics.Stylesheets) {
		rec.Set(metrics.Stylesheets, col.Stylesheets)
	}
	if p.Options.Has(metrics.StyleElements) {
		rec.Set(metrics.StyleElements, col.StyleElements)
	}
	rec.Merge(analysis)

	return &Result{Record: rec, Collection: col, Stylesheet: sheet}, nil
}

// OutputName derives report file name from the first analyzed source.
func OutputName(first string, format common.OutputFmt) string {
	var name string
	if u, err := url.Parse(first); err == nil && u.Host != "" {
		name = u.Host + u.Path
	} else {
		name = strings.TrimSuffix(filepath.Base(first), filepath.Ext(first))
	}
	name = slug.Make(name)
	if name == "" {
		name = "stylestats"
	}
	return name + format.Ext()
}
