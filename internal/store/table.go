package store

// Entity names the flat tables backing the shop.
type Entity string

const (
	EntityUsers     Entity = "users"
	EntityInventory Entity = "inventory"
	EntityExpenses  Entity = "expenses"
	EntityOrders    Entity = "orders"
	EntityPayments  Entity = "payments"
	EntityFeedback  Entity = "feedback"
)

// Entities lists every known entity, in a stable order.
var Entities = []Entity{EntityUsers, EntityInventory, EntityExpenses, EntityOrders, EntityPayments, EntityFeedback}

// Schemas holds the canonical header for each entity. Loads conform whatever
// is on disk to this header; saves always write it.
var Schemas = map[Entity][]string{
	EntityUsers:     {"user_id", "name", "role", "mobile", "password_hash", "active", "totp_secret"},
	EntityInventory: {"item_id", "item_name", "category", "unit", "stock_qty", "rate", "min_qty", "sell_price"},
	EntityExpenses:  {"date", "type", "category", "item", "item_id", "qty", "rate", "amount", "user_id", "remarks"},
	EntityOrders:    {"date", "customer_id", "item_id", "item_name", "qty", "rate", "total", "payment_mode", "balance", "user_id", "remarks"},
	EntityPayments:  {"date", "customer_id", "amount", "mode", "remarks", "user_id"},
	EntityFeedback:  {"feedback_id", "user_id", "name", "rating", "type", "comment", "created_at"},
}

// Table is an in-memory flat table: an ordered header plus string rows.
// All typing happens at the repository boundary, not here.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable returns an empty table with the canonical header for entity.
func NewTable(entity Entity) *Table {
	header := make([]string, len(Schemas[entity]))
	copy(header, Schemas[entity])
	return &Table{Header: header}
}

// Col returns the index of the named column, or -1.
func (t *Table) Col(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Get returns the value of the named column in row, or "" when the column
// does not exist or the row is short.
func (t *Table) Get(row []string, name string) string {
	i := t.Col(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Append adds a row given as a column->value map; unnamed columns are "".
func (t *Table) Append(values map[string]string) {
	row := make([]string, len(t.Header))
	for name, v := range values {
		if i := t.Col(name); i >= 0 {
			row[i] = v
		}
	}
	t.Rows = append(t.Rows, row)
}

// DeleteRow removes the row at index i.
func (t *Table) DeleteRow(i int) {
	if i < 0 || i >= len(t.Rows) {
		return
	}
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
}

// Conform rewrites the table to the canonical header of entity. Columns
// missing on disk are backfilled with ""; unknown columns are dropped.
// This is the permissive-read policy that tolerates schema drift between
// old data files.
func (t *Table) Conform(entity Entity) {
	canonical := Schemas[entity]
	same := len(t.Header) == len(canonical)
	if same {
		for i := range canonical {
			if t.Header[i] != canonical[i] {
				same = false
				break
			}
		}
	}
	if same {
		// Fast path: pad short rows and drop stray trailing fields so every
		// row matches the header width.
		for i, row := range t.Rows {
			for len(row) < len(canonical) {
				row = append(row, "")
			}
			t.Rows[i] = row[:len(canonical)]
		}
		return
	}

	oldIndex := make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		oldIndex[h] = i
	}

	rows := make([][]string, len(t.Rows))
	for ri, old := range t.Rows {
		row := make([]string, len(canonical))
		for ci, name := range canonical {
			if oi, ok := oldIndex[name]; ok && oi < len(old) {
				row[ci] = old[oi]
			}
		}
		rows[ri] = row
	}

	header := make([]string, len(canonical))
	copy(header, canonical)
	t.Header = header
	t.Rows = rows
}

// Equal reports whether two tables match column-for-column, row-for-row.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.Header) != len(other.Header) || len(t.Rows) != len(other.Rows) {
		return false
	}
	for i := range t.Header {
		if t.Header[i] != other.Header[i] {
			return false
		}
	}
	for ri := range t.Rows {
		if len(t.Rows[ri]) != len(other.Rows[ri]) {
			return false
		}
		for ci := range t.Rows[ri] {
			if t.Rows[ri][ci] != other.Rows[ri][ci] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	header := make([]string, len(t.Header))
	copy(header, t.Header)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		rows[i] = r
	}
	return &Table{Header: header, Rows: rows}
}
