package google

import (
	"fmt"
	"strings"

	"drivelog/internal/core"
)

// toRows converts a values matrix into string rows. The API drops trailing
// empty cells, so data rows are padded back to the header width.
func toRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for i, v := range values {
		row := toStrings(v)
		if i > 0 && len(row) < len(core.Header) {
			row = append(row, make([]string, len(core.Header)-len(row))...)
		}
		rows = append(rows, row)
	}
	return rows
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		vals := make([]interface{}, len(row))
		for j, cell := range row {
			vals[j] = cell
		}
		out[i] = vals
	}
	return out
}

// lastColumn is the A1 letter of the final header column.
func lastColumn() string {
	return columnName(len(core.Header))
}

func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
