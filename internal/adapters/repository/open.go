package repository

import (
	"context"
	"fmt"
)

// Supported sheet backends.
const (
	BackendMemory = "memory"
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// OpenSheet builds the Sheet for backend. The returned close func is never nil.
func OpenSheet(ctx context.Context, backend, path string) (Sheet, func() error, error) {
	noop := func() error { return nil }
	switch backend {
	case "", BackendMemory:
		return NewMemorySheet(), noop, nil
	case BackendCSV:
		return NewCSVSheet(path), noop, nil
	case BackendSQLite:
		sh, err := OpenSQLiteSheet(ctx, path)
		if err != nil {
			return nil, noop, err
		}
		return sh, sh.Close, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
