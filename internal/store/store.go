package store

import "context"

// TableStore is the Record Store: whole-table load/save for each entity.
// There are no partial updates; Update wraps a read-modify-write cycle in a
// single critical section so in-process writers cannot lose updates.
type TableStore interface {
	// Load reads an entire entity table. A missing backing table is not an
	// error: it yields an empty table with the canonical header.
	Load(ctx context.Context, entity Entity) (*Table, error)

	// Save replaces the backing table entirely.
	Save(ctx context.Context, entity Entity, table *Table) error

	// Update loads the table, applies fn, and saves the result while
	// holding the entity's write lock. Returning an error from fn aborts
	// the update with nothing written.
	Update(ctx context.Context, entity Entity, fn func(*Table) error) error
}
