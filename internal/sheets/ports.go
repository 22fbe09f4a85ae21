package sheets

import (
	"context"

	"drivelog/internal/core"
)

// Ports for table backends. Every backend holds the whole journal and is
// read and rewritten in full.
type (
	TableReader interface {
		// Load returns the persisted table, or an empty table when nothing
		// has been persisted yet.
		Load(ctx context.Context) (core.Table, error)
	}

	TableWriter interface {
		// Persist replaces the backing store with t.
		Persist(ctx context.Context, t core.Table) error
	}

	TableStore interface {
		TableReader
		TableWriter
	}
)
