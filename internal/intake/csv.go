package intake

// csv.go serializes exported row sets to CSV with RFC 4180 quoting. Both the
// admin export and the scheduled backup go through WriteCSV, so the two
// outputs can never drift apart.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteCSV writes a header row followed by one row per record. Fields
// containing commas, quotes or newlines are quoted with internal quotes
// doubled (encoding/csv handles the quoting).
//
// A zero-row export still yields one header line: the degenerate "id" header
// is kept because downstream consumers expect at least a header row.
func WriteCSV(w io.Writer, columns []string, rows [][]any) error {
	cw := csv.NewWriter(w)

	if len(rows) == 0 {
		if err := cw.Write([]string{"id"}); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	if err := cw.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				record[i] = formatValue(row[i])
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue renders one database value as CSV text.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int:
		return strconv.Itoa(t)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
