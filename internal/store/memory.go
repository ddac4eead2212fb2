package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryGateway is an in-process Gateway used by tests and local runs. It
// mirrors the wide-column semantics the module relies on: per-row atomic
// puts, cell-level overwrite, lexicographic key order on scans.
type MemoryGateway struct {
	mu     sync.RWMutex
	tables map[string]map[string]map[string][]byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{tables: make(map[string]map[string]map[string][]byte)}
}

func (g *MemoryGateway) Put(ctx context.Context, table, key string, cells map[string][]byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, ok := g.tables[table]
	if !ok {
		rows = make(map[string]map[string][]byte)
		g.tables[table] = rows
	}
	row, ok := rows[key]
	if !ok {
		row = make(map[string][]byte)
		rows[key] = row
	}
	for cell, value := range cells {
		row[cell] = append([]byte(nil), value...)
	}
	return nil
}

func (g *MemoryGateway) Get(ctx context.Context, table, key string) (map[string][]byte, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	row, ok := g.tables[table][key]
	if !ok {
		return nil, nil
	}
	return copyCells(row), nil
}

func (g *MemoryGateway) Scan(ctx context.Context, table string, opts ScanOptions) ([]Row, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, len(g.tables[table]))
	for key := range g.tables[table] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var rows []Row
	for _, key := range keys {
		if opts.Prefix != "" && !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		if opts.Start != "" && key < opts.Start {
			continue
		}
		if opts.Stop != "" && key >= opts.Stop {
			continue
		}
		rows = append(rows, Row{Key: key, Cells: copyCells(g.tables[table][key])})
		if opts.Limit > 0 && len(rows) >= opts.Limit {
			break
		}
	}
	return rows, nil
}

func (g *MemoryGateway) EnsureTables(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for table := range TableFamilies {
		if _, ok := g.tables[table]; !ok {
			g.tables[table] = make(map[string]map[string][]byte)
		}
	}
	return nil
}

func (g *MemoryGateway) Close() error { return nil }

func copyCells(row map[string][]byte) map[string][]byte {
	cells := make(map[string][]byte, len(row))
	for cell, value := range row {
		cells[cell] = append([]byte(nil), value...)
	}
	return cells
}
