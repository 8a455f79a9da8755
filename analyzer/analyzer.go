// Package analyzer computes stylesheet quality metrics from parsed CSS.
package analyzer

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"stylestats/css"
	"stylestats/metrics"
)

// Analyzer produces metrics record for a stylesheet according to options.
type Analyzer struct {
	opts *Options
	log  *zap.Logger
}

// New creates analyzer. Nil options mean defaults.
func New(opts *Options, log *zap.Logger) *Analyzer {
	if opts == nil {
		opts = DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{opts: opts, log: log.Named("analyzer")}
}

// Options returns options analyzer was created with.
func (a *Analyzer) Options() *Options {
	return a.opts
}

// Analyze computes requested metrics. Only metrics enabled in options are
// present in the resulting record, metrics which cannot be computed (division
// by zero) are omitted.
func (a *Analyzer) Analyze(sheet *css.Stylesheet) (*metrics.Record, error) {
	selectorList := sheet.Selectors()

	rules := AnalyzeRules(sheet.Rules)
	selectors := AnalyzeSelectors(selectorList, a.opts.jsPattern, a.opts.userPattern)
	decls, err := AnalyzeDeclarations(sheet.Declarations())
	if err != nil {
		return nil, err
	}

	a.log.Debug("Analyzing stylesheet",
		zap.Int("size", sheet.Size),
		zap.Int("rules", len(sheet.Rules)),
		zap.Int("selectors", len(selectorList)),
		zap.Int("declarations", rules.TotalDeclarations))

	rec := metrics.New()
	set := func(key metrics.Key, value any) {
		if a.opts.Has(key) {
			rec.Set(key, value)
		}
	}

	set(metrics.Size, sheet.Size)

	dataURISize := decls.DataURISize()
	set(metrics.DataURISize, dataURISize)
	if a.opts.Has(metrics.DataURISize) && dataURISize > 0 && sheet.Size > 0 {
		set(metrics.RatioOfDataURISize, float64(dataURISize)/float64(sheet.Size))
	}

	if a.opts.Has(metrics.GzippedSize) {
		size, err := GzipSize([]byte(sheet.Text))
		if err != nil {
			return nil, fmt.Errorf("unable to compute gzipped size: %w", err)
		}
		rec.Set(metrics.GzippedSize, size)
	}

	set(metrics.Rules, len(sheet.Rules))
	set(metrics.Selectors, len(selectorList))
	set(metrics.Declarations, rules.TotalDeclarations)

	simplicity := 0.0
	if len(selectorList) > 0 {
		simplicity = float64(len(sheet.Rules)) / float64(len(selectorList))
	}
	set(metrics.Simplicity, simplicity)

	if len(selectorList) > 0 {
		set(metrics.AverageOfIdentifier, float64(selectors.TotalIdentifiers)/float64(len(selectorList)))
	}
	if most, ok := selectors.Most(); ok {
		set(metrics.MostIdentifier, most.Count)
		set(metrics.MostIdentifierSelector, most.Selector)
	}

	if len(sheet.Rules) > 0 {
		set(metrics.AverageOfCohesion, float64(rules.TotalDeclarations)/float64(len(sheet.Rules)))
	}
	if lowest, ok := rules.Lowest(); ok {
		set(metrics.LowestCohesion, lowest.Count)
		set(metrics.LowestCohesionSelector, lowest.Selectors)
	}

	set(metrics.TotalUniqueFontSizes, len(decls.UniqueFontSizes))
	set(metrics.UniqueFontSizes, decls.UniqueFontSizes)
	set(metrics.TotalUniqueFontFamilies, len(decls.UniqueFontFamilies))
	set(metrics.UniqueFontFamilies, decls.UniqueFontFamilies)
	set(metrics.TotalUniqueColors, len(decls.UniqueColors))
	set(metrics.UniqueColors, decls.UniqueColors)
	set(metrics.TotalUniqueBackgroundImages, len(decls.UniqueBackgroundImages))
	set(metrics.UniqueBackgroundImages, decls.UniqueBackgroundImages)

	set(metrics.IDSelectors, selectors.IDSelectors)
	set(metrics.UniversalSelectors, selectors.UniversalSelectors)
	set(metrics.UnqualifiedAttributeSelectors, selectors.UnqualifiedAttributeSelectors)
	set(metrics.JavascriptSpecificSelectors, selectors.JavascriptSpecificSelectors)
	set(metrics.UserSpecifiedSelectors, selectors.UserSpecifiedSelectors)

	set(metrics.ImportantKeywords, decls.ImportantKeywords)
	set(metrics.FloatProperties, decls.FloatProperties)

	if n := a.opts.PropertiesCount(); n > 0 {
		set(metrics.PropertiesCount, decls.TopProperties(n))
	}
	set(metrics.MediaQueries, sheet.MediaQueries)

	return rec, nil
}

// GzipSize returns size of data compressed with gzip at best compression.
func GzipSize(data []byte) (int, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}
