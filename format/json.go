package format

import (
	"bytes"
	"encoding/json"
	"io"

	"stylestats/metrics"
)

// JSON writes record as indented JSON object keeping metrics order. When
// pretty is set labels and prettified values are written instead.
func JSON(w io.Writer, rec *metrics.Record, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = prettyJSON(Prettify(rec))
	} else {
		data, err = json.Marshal(rec)
	}
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

func prettyJSON(rows []Row) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, r := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(r.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
