// Package repo is the Postgres persistence layer. Every tenant-owned
// query takes the store id explicitly and filters on it.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("repo: not found")
	ErrConstraint = errors.New("repo: constraint violation")
)

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConstraintError reports a unique or foreign key violation.
func IsConstraintError(err error) bool { return errors.Is(err, ErrConstraint) }

// Client bundles the per-table repositories over one driver or transaction.
type Client struct {
	drv dialect.Driver

	Schema          *Schema
	Store           *StoreRepo
	Admin           *AdminRepo
	StoreHours      *StoreHoursRepo
	ServiceType     *ServiceTypeRepo
	Therapist       *TherapistRepo
	TherapistTime   *TherapistTimeRepo
	Booking         *BookingRepo
	ArchivedBooking *ArchivedBookingRepo
}

// NewClient wires every repository to drv.
func NewClient(drv dialect.Driver) *Client {
	c := newClient(drv)
	c.drv = drv
	c.Schema = &Schema{drv: drv}
	return c
}

func newClient(ex dialect.ExecQuerier) *Client {
	b := builder()
	return &Client{
		Store:           &StoreRepo{ex: ex, b: b},
		Admin:           &AdminRepo{ex: ex, b: b},
		StoreHours:      &StoreHoursRepo{ex: ex, b: b},
		ServiceType:     &ServiceTypeRepo{ex: ex, b: b},
		Therapist:       &TherapistRepo{ex: ex, b: b},
		TherapistTime:   &TherapistTimeRepo{ex: ex, b: b},
		Booking:         &BookingRepo{ex: ex, b: b},
		ArchivedBooking: &ArchivedBookingRepo{ex: ex, b: b},
	}
}

func (c *Client) Close() error {
	if c.drv == nil {
		return nil
	}
	return c.drv.Close()
}

// WithTx runs fn against a transactional client. fn's error rolls back.
// Calling WithTx on a transactional client reuses the transaction.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Client) error) error {
	if c.drv == nil {
		return fn(c)
	}

	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(newClient(tx)); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back transaction: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.Postgres)
}

// query runs a SELECT and hands each row to scan.
func query(ctx context.Context, ex dialect.ExecQuerier, q string, args []any, scan func(*entsql.Rows) error) error {
	var rows entsql.Rows
	if err := ex.Query(ctx, q, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// exec runs a statement and returns the number of affected rows.
func exec(ctx context.Context, ex dialect.ExecQuerier, q string, args []any) (int64, error) {
	var res sql.Result
	if err := ex.Exec(ctx, q, args, &res); err != nil {
		return 0, wrapPQ(err)
	}
	return res.RowsAffected()
}

// affectOne runs a statement that must touch at least one row.
func affectOne(ctx context.Context, ex dialect.ExecQuerier, op, q string, args []any) error {
	n, err := exec(ctx, ex, q, args)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func wrapPQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation", "foreign_key_violation":
			return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Message)
		}
	}
	return err
}
