package format

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stylestats/common"
	"stylestats/metrics"
)

const tableTitle = "StyleStats!"

// Table renders prettified record as two column table.
func Table(w io.Writer, rec *metrics.Record, style common.TableStyle, color bool) error {
	tbl := table.NewWriter()
	switch style {
	case common.TableStyleRounded:
		tbl.SetStyle(table.StyleRounded)
	default:
		tbl.SetStyle(table.StyleLight)
	}
	tbl.Style().Options.SeparateRows = style != common.TableStyleCompact
	tbl.Style().Title.Align = text.AlignLeft
	tbl.SetTitle(tableTitle)

	if color {
		tbl.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Colors: text.Colors{text.FgCyan}},
		})
	}

	for _, r := range Prettify(rec) {
		tbl.AppendRow(table.Row{r.Label, r.Value})
	}

	_, err := io.WriteString(w, tbl.Render()+"\n")
	return err
}
