package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// CSVStore keeps one CSV file per entity under a data directory. Every
// entity has its own mutex, and saves go through a temp file + rename so a
// crash mid-write cannot leave a half-written table behind.
type CSVStore struct {
	dir string
	mu  map[Entity]*sync.Mutex
}

// NewCSVStore creates the data directory if needed and returns a store.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	mu := make(map[Entity]*sync.Mutex, len(Entities))
	for _, e := range Entities {
		mu[e] = &sync.Mutex{}
	}
	return &CSVStore{dir: dir, mu: mu}, nil
}

// Dir returns the backing data directory.
func (s *CSVStore) Dir() string {
	return s.dir
}

func (s *CSVStore) path(entity Entity) string {
	return filepath.Join(s.dir, string(entity)+".csv")
}

func (s *CSVStore) lock(entity Entity) *sync.Mutex {
	if m, ok := s.mu[entity]; ok {
		return m
	}
	// Unknown entities get a lazily created lock slot; callers only ever
	// pass the known entities in practice.
	m := &sync.Mutex{}
	s.mu[entity] = m
	return m
}

func (s *CSVStore) Load(ctx context.Context, entity Entity) (*Table, error) {
	m := s.lock(entity)
	m.Lock()
	defer m.Unlock()
	return s.load(entity)
}

func (s *CSVStore) Save(ctx context.Context, entity Entity, table *Table) error {
	m := s.lock(entity)
	m.Lock()
	defer m.Unlock()
	return s.save(entity, table)
}

func (s *CSVStore) Update(ctx context.Context, entity Entity, fn func(*Table) error) error {
	m := s.lock(entity)
	m.Lock()
	defer m.Unlock()

	table, err := s.load(entity)
	if err != nil {
		return err
	}
	if err := fn(table); err != nil {
		return err
	}
	return s.save(entity, table)
}

func (s *CSVStore) load(entity Entity) (*Table, error) {
	data, err := os.ReadFile(s.path(entity))
	if os.IsNotExist(err) {
		return NewTable(entity), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entity, err)
	}

	// Old exports from spreadsheet tools are sometimes Windows-1252 encoded;
	// fall back to that decoding before parsing.
	if !utf8.Valid(data) {
		if decoded, decErr := charmap.Windows1252.NewDecoder().Bytes(data); decErr == nil {
			data = decoded
		}
	}

	records, err := parseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", entity, err)
	}

	if len(records) == 0 {
		return NewTable(entity), nil
	}

	table := &Table{Header: records[0], Rows: records[1:]}
	table.Conform(entity)
	return table, nil
}

func (s *CSVStore) save(entity Entity, table *Table) error {
	t := table.Clone()
	t.Conform(entity)

	tmp, err := os.CreateTemp(s.dir, string(entity)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", entity, err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s header: %w", entity, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s rows: %w", entity, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush %s: %w", entity, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", entity, err)
	}

	if err := os.Rename(tmpName, s.path(entity)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", entity, err)
	}
	return nil
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows may be ragged; Conform repairs them
	return r.ReadAll()
}
