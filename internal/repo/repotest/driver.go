// Package repotest provides a scripted ent driver for service tests.
package repotest

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Driver answers statements through QueryFn and ExecFn and records them.
// A nil QueryFn returns no rows; a nil ExecFn reports one affected row.
type Driver struct {
	QueryFn func(query string, args []any) ([][]any, error)
	ExecFn  func(query string, args []any) (int64, error)

	mu    sync.Mutex
	stmts []string
}

var _ dialect.Driver = (*Driver)(nil)

func (d *Driver) record(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stmts = append(d.stmts, q)
}

// Statements returns what ran so far.
func (d *Driver) Statements() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.stmts...)
}

// Ran reports whether some statement contains every fragment.
func (d *Driver) Ran(fragments ...string) bool {
	for _, s := range d.Statements() {
		all := true
		for _, f := range fragments {
			all = all && strings.Contains(s, f)
		}
		if all {
			return true
		}
	}
	return false
}

func (d *Driver) Exec(_ context.Context, q string, args, v any) error {
	d.record(q)
	n := int64(1)
	if d.ExecFn != nil {
		var err error
		if n, err = d.ExecFn(q, args.([]any)); err != nil {
			return err
		}
	}
	if res, ok := v.(*sql.Result); ok {
		*res = result(n)
	}
	return nil
}

func (d *Driver) Query(_ context.Context, q string, args, v any) error {
	d.record(q)
	var data [][]any
	if d.QueryFn != nil {
		var err error
		if data, err = d.QueryFn(q, args.([]any)); err != nil {
			return err
		}
	}
	rows, ok := v.(*entsql.Rows)
	if !ok {
		return fmt.Errorf("repotest: unsupported query target %T", v)
	}
	*rows = entsql.Rows{ColumnScanner: &scanner{data: data, pos: -1}}
	return nil
}

func (d *Driver) Tx(context.Context) (dialect.Tx, error) { return tx{d}, nil }
func (d *Driver) Close() error                          { return nil }
func (d *Driver) Dialect() string                       { return dialect.Postgres }

type tx struct{ *Driver }

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type result int64

func (r result) LastInsertId() (int64, error) { return 0, nil }
func (r result) RowsAffected() (int64, error) { return int64(r), nil }

type scanner struct {
	data [][]any
	pos  int
}

func (s *scanner) Close() error                           { return nil }
func (s *scanner) ColumnTypes() ([]*sql.ColumnType, error) { return nil, nil }
func (s *scanner) Columns() ([]string, error)             { return nil, nil }
func (s *scanner) Err() error                             { return nil }
func (s *scanner) NextResultSet() bool                    { return false }

func (s *scanner) Next() bool {
	s.pos++
	return s.pos < len(s.data)
}

// Scan assigns the scripted row; values must match destination types.
func (s *scanner) Scan(dest ...any) error {
	row := s.data[s.pos]
	if len(row) != len(dest) {
		return fmt.Errorf("repotest: row has %d values, scan wants %d", len(row), len(dest))
	}
	for i, v := range row {
		dv := reflect.ValueOf(dest[i]).Elem()
		vv := reflect.ValueOf(v)
		if !vv.Type().AssignableTo(dv.Type()) {
			return fmt.Errorf("repotest: column %d: cannot assign %T to %s", i, v, dv.Type())
		}
		dv.Set(vv)
	}
	return nil
}
