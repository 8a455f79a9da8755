package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"stylestats/metrics"
)

// CSV writes record as header row of metric names followed by single row of
// values. Lists are space separated, properties are written as
// "property:count".
func CSV(w io.Writer, rec *metrics.Record, pretty bool) error {
	var header, values []string
	if pretty {
		for _, r := range Prettify(rec) {
			header = append(header, r.Label)
			values = append(values, r.Value)
		}
	} else {
		for _, k := range rec.Keys() {
			v, _ := rec.Get(k)
			header = append(header, string(k))
			values = append(values, csvValue(v))
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.Write(values); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func csvValue(value any) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, " ")
	case []metrics.PropertyCount:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprintf("%s:%d", p.Property, p.Count))
		}
		return strings.Join(parts, " ")
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return fmt.Sprint(value)
}
