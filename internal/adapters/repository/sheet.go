package repository

import (
	"context"
	"sync"
)

// Sheet is the spreadsheet collaborator: whole-collection read and replace.
// The first row is the header.
type Sheet interface {
	ReadAll(ctx context.Context) ([][]string, error)
	// WriteAll replaces every row. Implementations either persist all rows or
	// leave the sheet unchanged.
	WriteAll(ctx context.Context, rows [][]string) error
}

// MemorySheet is an in-process Sheet.
type MemorySheet struct {
	mu   sync.RWMutex
	rows [][]string
}

// NewMemorySheet creates a sheet holding rows.
func NewMemorySheet(rows ...[]string) *MemorySheet {
	return &MemorySheet{rows: copyRows(rows)}
}

// ReadAll returns a copy of every row.
func (m *MemorySheet) ReadAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRows(m.rows), nil
}

// WriteAll replaces the rows.
func (m *MemorySheet) WriteAll(ctx context.Context, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := copyRows(rows)
	m.mu.Lock()
	m.rows = next
	m.mu.Unlock()
	return nil
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
