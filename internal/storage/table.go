package storage

import "drivelog/internal/core"

// Append returns a new table with r added at the end. The input table is
// left untouched so callers holding it keep a consistent snapshot.
func Append(t core.Table, r core.DailyRecord) core.Table {
	out := make(core.Table, len(t), len(t)+1)
	copy(out, t)
	return append(out, r)
}
