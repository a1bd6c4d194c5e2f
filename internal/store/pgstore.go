package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps the same whole-table semantics as the CSV backend but inside
// PostgreSQL: one relation per entity, all columns text, and Save/Update run
// as a single transaction so concurrent writers from several processes
// cannot interleave half a table.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Pool exposes the underlying connection pool for health checks.
func (s *PGStore) Pool() *pgxpool.Pool {
	return s.pool
}

func relName(entity Entity) string {
	return "shop_" + string(entity)
}

// EnsureSchema creates the backing relations if they do not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	for _, entity := range Entities {
		cols := make([]string, 0, len(Schemas[entity])+1)
		cols = append(cols, "seq BIGSERIAL PRIMARY KEY")
		for _, c := range Schemas[entity] {
			cols = append(cols, fmt.Sprintf("%q TEXT NOT NULL DEFAULT ''", c))
		}
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", relName(entity), strings.Join(cols, ", "))
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("ensure %s: %w", entity, err)
		}
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context, entity Entity) (*Table, error) {
	return s.loadTx(ctx, s.pool, entity)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *PGStore) loadTx(ctx context.Context, q querier, entity Entity) (*Table, error) {
	header := Schemas[entity]
	quoted := make([]string, len(header))
	for i, c := range header {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	sql := fmt.Sprintf("SELECT %s FROM %s ORDER BY seq", strings.Join(quoted, ", "), relName(entity))

	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", entity, err)
	}
	defer rows.Close()

	table := NewTable(entity)
	for rows.Next() {
		row := make([]string, len(header))
		dest := make([]any, len(header))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", entity, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

func (s *PGStore) Save(ctx context.Context, entity Entity, table *Table) error {
	return s.Update(ctx, entity, func(t *Table) error {
		replacement := table.Clone()
		replacement.Conform(entity)
		t.Header = replacement.Header
		t.Rows = replacement.Rows
		return nil
	})
}

func (s *PGStore) Update(ctx context.Context, entity Entity, fn func(*Table) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s update: %w", entity, err)
	}
	defer tx.Rollback(ctx)

	// Serialize whole-table rewrites against each other.
	if _, err := tx.Exec(ctx, fmt.Sprintf("LOCK TABLE %s IN EXCLUSIVE MODE", relName(entity))); err != nil {
		return fmt.Errorf("lock %s: %w", entity, err)
	}

	table, err := s.loadTx(ctx, tx, entity)
	if err != nil {
		return err
	}
	if err := fn(table); err != nil {
		return err
	}
	table.Conform(entity)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", relName(entity))); err != nil {
		return fmt.Errorf("clear %s: %w", entity, err)
	}

	header := Schemas[entity]
	quoted := make([]string, len(header))
	params := make([]string, len(header))
	for i, c := range header {
		quoted[i] = fmt.Sprintf("%q", c)
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		relName(entity), strings.Join(quoted, ", "), strings.Join(params, ", "))

	batch := &pgx.Batch{}
	for _, row := range table.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		batch.Queue(insert, args...)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert %s rows: %w", entity, err)
		}
	}

	return tx.Commit(ctx)
}
