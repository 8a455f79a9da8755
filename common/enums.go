// Package common holds enums shared by configuration, renderers and the
// command line.
package common

// Specification of requested report output type.
// ENUM(table, json, csv, html, md, template)
type OutputFmt int

// Ext returns file extension for report written to a file.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtTable:
		return ".txt"
	case OutputFmtJson:
		return ".json"
	case OutputFmtCsv:
		return ".csv"
	case OutputFmtHtml:
		return ".html"
	case OutputFmtMd:
		return ".md"
	case OutputFmtTemplate:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// NeedsTemplate reports whether format requires user template.
func (o OutputFmt) NeedsTemplate() bool {
	return o == OutputFmtTemplate
}

// Specification of table rendering style.
// ENUM(default, compact, rounded)
type TableStyle int
