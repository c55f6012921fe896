// Package storage is the relational collaborator for the GeoPackage
// container: it owns the SQLite handle and exposes statement execution,
// transactional batches, table introspection, and the binding→storage-type
// mapping. SQL dialect concerns stay inside this package; callers hand over
// parameterized statements and get row sets back.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/geoboxdev/geobox/pkg/errors"
	_ "github.com/mattn/go-sqlite3"
)

// Statement is one parameterized statement intent, executed verbatim by the
// database. Batches preserve statement order.
type Statement struct {
	SQL  string
	Args []interface{}
}

// Column is one physical column from table introspection.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// Database wraps the SQLite container file.
type Database struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the SQLite container at path.
func Open(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(ErrOpenFailed, err, "failed to open SQLite database").
			AddContext("path", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(ErrPingFailed, err, "failed to reach SQLite database").
			AddContext("path", path)
	}
	return &Database{db: db, path: path}, nil
}

// NewWithDB wraps an existing handle. Used by tests and by callers that
// manage the connection themselves.
func NewWithDB(db *sql.DB, path string) *Database {
	return &Database{db: db, path: path}
}

// Path returns the container file path.
func (d *Database) Path() string { return d.path }

// SQL exposes the underlying handle for collaborators that speak
// database/sql directly (the catalog migrator).
func (d *Database) SQL() *sql.DB { return d.db }

// Close closes the database connection.
func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	if err := d.db.Close(); err != nil {
		return errors.Wrap(ErrCloseFailed, err, "failed to close SQLite database")
	}
	return nil
}

// Query executes a single statement and materializes the result into a
// RowSet with column lookup by name.
func (d *Database) Query(ctx context.Context, query string, args ...interface{}) (*RowSet, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(ErrQueryFailed, err, "query failed").AddContext("sql", query)
	}
	defer rows.Close()

	rs, err := newRowSet(rows)
	if err != nil {
		return nil, errors.Wrap(ErrScanFailed, err, "failed to scan query result").AddContext("sql", query)
	}
	return rs, nil
}

// Exec executes a single statement that returns no rows.
func (d *Database) Exec(ctx context.Context, query string, args ...interface{}) error {
	if _, err := d.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(ErrExecFailed, err, "statement failed").AddContext("sql", query)
	}
	return nil
}

// ExecBatch executes the statements in order inside one transaction. Any
// failure rolls the whole batch back; partial application is never
// observable. The execution layer's failure is preserved in the error chain.
func (d *Database) ExecBatch(ctx context.Context, stmts []Statement) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(ErrBatchFailed, err, "failed to begin transaction")
	}
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			tx.Rollback()
			return errors.Wrapf(ErrBatchFailed, err, "statement %d of %d failed, batch rolled back", i+1, len(stmts)).
				AddContext("sql", stmt.SQL)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(ErrBatchFailed, err, "failed to commit batch")
	}
	return nil
}

// TableExists reports whether a table exists physically in the database,
// regardless of any catalog registration.
func (d *Database) TableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&count)
	if err != nil {
		return false, errors.Wrap(ErrQueryFailed, err, "failed to check table existence").
			AddContext("table", name)
	}
	return count > 0, nil
}

// TableInfo introspects the physical column list of a table, in declaration
// order.
func (d *Database) TableInfo(ctx context.Context, name string) ([]Column, error) {
	rows, err := d.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, QuoteIdentifier(name)))
	if err != nil {
		return nil, errors.Wrap(ErrTableInfoFailed, err, "failed to introspect table").
			AddContext("table", name)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			cid     int
			col     Column
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, errors.Wrap(ErrTableInfoFailed, err, "failed to scan table_info row").
				AddContext("table", name)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(ErrTableInfoFailed, err, "table_info iteration failed").
			AddContext("table", name)
	}
	return cols, nil
}

// DropTable removes a physical table. Used only for orphan cleanup before a
// re-create; never called on catalog-registered tables.
func (d *Database) DropTable(ctx context.Context, name string) error {
	if _, err := d.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE %s`, QuoteIdentifier(name))); err != nil {
		return errors.Wrap(ErrDropFailed, err, "failed to drop table").AddContext("table", name)
	}
	return nil
}

// QuoteIdentifier quotes a table or column name for interpolation into DDL,
// where parameters cannot be bound.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
