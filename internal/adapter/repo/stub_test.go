package repo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type call struct {
	query string
	args  []any
}

// stubExecutor answers queries by their marker line.
type stubExecutor struct {
	calls []call
	rows  map[string][][]any
	tags  map[string]pgconn.CommandTag
	errs  map[string]error
}

func newStubExecutor() *stubExecutor {
	return &stubExecutor{
		rows: make(map[string][][]any),
		tags: make(map[string]pgconn.CommandTag),
		errs: make(map[string]error),
	}
}

func markerOf(query string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(query), "\n")
	return line
}

func (s *stubExecutor) record(query string, args []any) string {
	s.calls = append(s.calls, call{query: query, args: args})
	return markerOf(query)
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	m := s.record(query, args)
	if err := s.errs[m]; err != nil {
		return pgconn.CommandTag{}, err
	}
	return s.tags[m], nil
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	m := s.record(query, args)
	if err := s.errs[m]; err != nil {
		return stubRow{err: err}
	}
	queue := s.rows[m]
	if len(queue) == 0 {
		return stubRow{err: pgx.ErrNoRows}
	}
	s.rows[m] = queue[1:]
	return stubRow{values: queue[0]}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	m := s.record(query, args)
	if err := s.errs[m]; err != nil {
		return nil, err
	}
	return &stubRows{values: s.rows[m], idx: -1}, nil
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

type stubRows struct {
	values [][]any
	idx    int
	closed bool
}

func (r *stubRows) Close()                                       { r.closed = true }
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Values() ([]any, error) {
	return nil, errors.New("values not supported in stub rows")
}

func (r *stubRows) Next() bool {
	if r.closed {
		return false
	}
	r.idx++
	return r.idx < len(r.values)
}

func (r *stubRows) Scan(dest ...any) error {
	return assign(dest, r.values[r.idx])
}

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v))
	}
	return nil
}
