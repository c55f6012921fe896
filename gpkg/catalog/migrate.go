package catalog

import (
	"context"
	"database/sql"

	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Migration error codes
var (
	ErrMigrationFailed     = errors.MustNewCode("catalog.migration_failed")
	ErrMigrationVersion    = errors.MustNewCode("catalog.migration_version_failed")
	ErrSchemaVerifyFailed  = errors.MustNewCode("catalog.schema_verification_failed")
	ErrSeedInsertionFailed = errors.MustNewCode("catalog.seed_insertion_failed")
)

// Migration is one versioned catalog schema step.
type Migration interface {
	Version() int
	Name() string
	Up(ctx context.Context, tx bun.Tx) error
}

// Migrator creates and upgrades the system catalog tables using bun over the
// shared SQLite handle.
type Migrator struct {
	db *bun.DB
}

// NewMigrator wraps the container handle for catalog migrations.
func NewMigrator(sqldb *sql.DB) *Migrator {
	return &Migrator{db: bun.NewDB(sqldb, sqlitedialect.New())}
}

func (m *Migrator) migrations() []Migration {
	return []Migration{
		&migrationSystemTables{},
	}
}

// MigrateToLatest applies all pending migrations in one transaction.
func (m *Migrator) MigrateToLatest(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS geobox_migrations (version INTEGER PRIMARY KEY, name TEXT NOT NULL, applied_at TEXT NOT NULL)`); err != nil {
		return errors.Wrap(ErrMigrationFailed, err, "failed to create migration bookkeeping table")
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	var pending []Migration
	for _, mig := range m.migrations() {
		if mig.Version() > current {
			pending = append(pending, mig)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(ErrMigrationFailed, err, "failed to begin migration transaction")
	}
	for _, mig := range pending {
		if err := mig.Up(ctx, tx); err != nil {
			tx.Rollback()
			return errors.Wrapf(ErrMigrationFailed, err, "migration %d (%s) failed", mig.Version(), mig.Name())
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO geobox_migrations (version, name, applied_at) VALUES (?, ?, datetime('now'))`,
			mig.Version(), mig.Name()); err != nil {
			tx.Rollback()
			return errors.Wrapf(ErrMigrationFailed, err, "failed to record migration %d", mig.Version())
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(ErrMigrationFailed, err, "failed to commit migrations")
	}
	return nil
}

// CurrentVersion returns the highest applied migration version.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := m.db.QueryRowContext(ctx, `SELECT MAX(version) FROM geobox_migrations`).Scan(&version)
	if err != nil {
		return 0, errors.Wrap(ErrMigrationVersion, err, "failed to read migration version")
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

// VerifySchema checks that every system table exists after migration.
func (m *Migrator) VerifySchema(ctx context.Context) error {
	required := []string{
		ContentsTable,
		GeometryColumnsTable,
		DataColumnsTable,
		DataColumnConstraintsTable,
		SpatialRefSysTable,
	}
	for _, table := range required {
		var count int
		err := m.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		if err != nil {
			return errors.Wrap(ErrSchemaVerifyFailed, err, "schema verification query failed")
		}
		if count == 0 {
			return errors.Newf(ErrSchemaVerifyFailed, "system table %s is missing", table)
		}
	}
	return nil
}

// migrationSystemTables creates the five system catalog tables and seeds the
// default spatial reference systems the container format requires.
type migrationSystemTables struct{}

func (m *migrationSystemTables) Version() int { return 1 }
func (m *migrationSystemTables) Name() string { return "system_tables" }

func (m *migrationSystemTables) Up(ctx context.Context, tx bun.Tx) error {
	models := []interface{}{
		(*SpatialRefSys)(nil),
		(*Contents)(nil),
		(*GeometryColumns)(nil),
		(*DataColumns)(nil),
		(*DataColumnConstraints)(nil),
	}
	for _, model := range models {
		if _, err := tx.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return errors.Wrap(ErrMigrationFailed, err, "failed to create system table")
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_gpkg_data_columns_table ON gpkg_data_columns(table_name)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_gpkg_dcc_identity ON gpkg_data_column_constraints(constraint_name, constraint_type, value)`,
	}
	for _, idx := range indexes {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return errors.Wrap(ErrMigrationFailed, err, "failed to create catalog index")
		}
	}

	for _, srs := range defaultSpatialRefSys() {
		if _, err := tx.NewInsert().Model(&srs).Exec(ctx); err != nil {
			return errors.Wrapf(ErrSeedInsertionFailed, err, "failed to seed srs %d", srs.SRSID)
		}
	}
	return nil
}

// defaultSpatialRefSys returns the three reference systems every container
// must carry: WGS 84 plus the two "undefined" placeholders.
func defaultSpatialRefSys() []SpatialRefSys {
	return []SpatialRefSys{
		{
			SRSName:                "WGS 84 geodetic",
			SRSID:                  4326,
			Organization:           "EPSG",
			OrganizationCoordsysID: 4326,
			Definition: `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,AUTHORITY["EPSG","7030"]],` +
				`AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],` +
				`UNIT["degree",0.0174532925199433,AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`,
			Description: "longitude/latitude coordinates in decimal degrees on the WGS 84 spheroid",
		},
		{
			SRSName:                "Undefined cartesian SRS",
			SRSID:                  -1,
			Organization:           "NONE",
			OrganizationCoordsysID: -1,
			Definition:             "undefined",
			Description:            "undefined cartesian coordinate reference system",
		},
		{
			SRSName:                "Undefined geographic SRS",
			SRSID:                  0,
			Organization:           "NONE",
			OrganizationCoordsysID: 0,
			Definition:             "undefined",
			Description:            "undefined geographic coordinate reference system",
		},
	}
}
