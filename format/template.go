package format

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"regexp"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"stylestats/metrics"
)

//go:embed templates/*.tmpl
var templates embed.FS

var lineBreaks = regexp.MustCompile(`\r\n|\n|\r`)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Title string
	// Rows are prettified metrics in record order.
	Rows []Row
	// Metrics are raw metric values by metric name.
	Metrics map[string]any
	// Pretty are prettified metric values by metric name.
	Pretty map[string]string
}

func buildValues(rec *metrics.Record) Values {
	v := Values{
		Title:   tableTitle,
		Rows:    Prettify(rec),
		Metrics: make(map[string]any, rec.Len()),
		Pretty:  make(map[string]string, rec.Len()),
	}
	for _, r := range v.Rows {
		raw, _ := rec.Get(r.Key)
		v.Metrics[string(r.Key)] = raw
		v.Pretty[string(r.Key)] = r.Value
	}
	return v
}

// removeBreak escapes text for HTML and replaces line breaks with spaces.
func removeBreak(text string) string {
	return lineBreaks.ReplaceAllString(htmltemplate.HTMLEscapeString(text), " ")
}

func funcMap() template.FuncMap {
	fm := sprig.FuncMap()
	fm["removeBreak"] = removeBreak
	return fm
}

// HTML renders record as a standalone HTML page.
func HTML(w io.Writer, rec *metrics.Record) error {
	tmpl, err := htmltemplate.New("stats.html.tmpl").ParseFS(templates, "templates/stats.html.tmpl")
	if err != nil {
		return fmt.Errorf("unable to parse html template: %w", err)
	}
	return tmpl.Execute(w, buildValues(rec))
}

// Markdown renders record as a markdown table.
func Markdown(w io.Writer, rec *metrics.Record) error {
	data, err := templates.ReadFile("templates/stats.md.tmpl")
	if err != nil {
		return err
	}
	return Template(w, rec, string(data))
}

// Template renders record with user supplied text template. In addition to
// sprig functions "removeBreak" is available.
func Template(w io.Writer, rec *metrics.Record, text string) error {
	tmpl, err := template.New("user").Funcs(funcMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("unable to parse template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, buildValues(rec)); err != nil {
		return fmt.Errorf("unable to execute template: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
