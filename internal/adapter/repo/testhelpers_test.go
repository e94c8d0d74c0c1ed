package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"globalfund/internal/domain"
)

// fakeExecutor satisfies infra.SQLExecutor with per-call hooks and records
// every statement it sees, so tests can assert both outcomes and the exact
// SQL a repository ran.
type fakeExecutor struct {
	execFn     func(query string, args ...any) (pgconn.CommandTag, error)
	queryRowFn func(query string, args ...any) pgx.Row
	queryFn    func(query string, args ...any) (pgx.Rows, error)

	execQueries []string
	execArgs    [][]any
	rowQueries  []string
}

func (f *fakeExecutor) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execQueries = append(f.execQueries, query)
	f.execArgs = append(f.execArgs, args)
	if f.execFn == nil {
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return f.execFn(query, args...)
}

func (f *fakeExecutor) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.rowQueries = append(f.rowQueries, query)
	if f.queryRowFn == nil {
		return scanRow{err: errors.New("unexpected QueryRow")}
	}
	return f.queryRowFn(query, args...)
}

func (f *fakeExecutor) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	if f.queryFn == nil {
		return nil, errors.New("unexpected Query")
	}
	return f.queryFn(query, args...)
}

// scanRow is a pgx.Row that either fails with err or copies values into the
// scan destinations in order.
type scanRow struct {
	values []any
	err    error
}

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, v := range r.values {
		if i >= len(dest) {
			break
		}
		assign(dest[i], v)
	}
	return nil
}

func assign(dest, value any) {
	switch d := dest.(type) {
	case *string:
		if v, ok := value.(string); ok {
			*d = v
		}
	case *int64:
		if v, ok := value.(int64); ok {
			*d = v
		}
	case *[]byte:
		if v, ok := value.([]byte); ok {
			*d = v
		}
	case *domain.IdempotencyStatus:
		if v, ok := value.(domain.IdempotencyStatus); ok {
			*d = v
		}
	}
	// Remaining destinations (timestamps and the like) stay zero; tests here
	// only assert on the fields covered above.
}

func commandTag(rows int64) pgconn.CommandTag {
	if rows == 0 {
		return pgconn.NewCommandTag("UPDATE 0")
	}
	return pgconn.NewCommandTag("UPDATE 1")
}
