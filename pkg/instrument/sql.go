package instrument

import (
	"context"
	"database/sql"

	"github.com/jt828/observation/pkg/observation"
)

// DB wraps *sql.DB so queries run inside "db.sql.query" observations.
// The operation (query/exec) is low-cardinality; the statement text is
// high-cardinality.
type DB struct {
	db  *sql.DB
	reg *observation.Registry
}

func WrapDB(db *sql.DB, reg *observation.Registry) *DB {
	return &DB{db: db, reg: reg}
}

// Unwrap returns the underlying *sql.DB for calls that need the full
// surface.
func (d *DB) Unwrap() *sql.DB { return d.db }

func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	octx, obs := d.start(ctx, "query", query)
	rows, err := d.db.QueryContext(octx, query, args...)
	if err != nil {
		obs.Error(err)
	}
	obs.Stop()
	return rows, err
}

// QueryRowContext observes the query submission only; errors surface on
// Row.Scan and are not captured here.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	octx, obs := d.start(ctx, "query", query)
	row := d.db.QueryRowContext(octx, query, args...)
	obs.Stop()
	return row
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	octx, obs := d.start(ctx, "exec", query)
	res, err := d.db.ExecContext(octx, query, args...)
	if err != nil {
		obs.Error(err)
	}
	obs.Stop()
	return res, err
}

func (d *DB) PingContext(ctx context.Context) error {
	octx, obs := d.start(ctx, "ping", "")
	err := d.db.PingContext(octx)
	if err != nil {
		obs.Error(err)
	}
	obs.Stop()
	return err
}

func (d *DB) start(ctx context.Context, op, query string) (context.Context, observation.Observation) {
	opts := []observation.Option{
		observation.WithContextualName("sql " + op),
		observation.WithLowCardinalityKeyValue("db.operation", op),
	}
	if query != "" {
		opts = append(opts, observation.WithHighCardinalityKeyValue("db.statement", query))
	}
	return observation.Start(ctx, "db.sql.query", d.reg, opts...)
}
