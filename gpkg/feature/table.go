// Package feature manages the lifecycle of vector feature tables inside a
// GeoPackage container: creating the physical table together with its
// catalog rows in one transaction, and answering schema and geometry
// metadata queries from a lazily populated cache.
package feature

import (
	"context"
	"time"

	"github.com/geoboxdev/geobox/gpkg/catalog"
	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/go-spatial/geom"
	"github.com/rs/zerolog"
)

// Table manages one logical feature table. Instances are not safe for
// concurrent use; callers serialize access per table identity.
type Table struct {
	name      string
	featureID string
	db        *storage.Database
	cat       *catalog.Catalog
	logger    zerolog.Logger

	// Metadata cache. Either fully loaded (fields non-empty and geomInfo
	// set) or unloaded; never partially populated.
	description string
	fields      []FieldMetadata
	bounds      *geom.Extent
	lastChange  time.Time
	geomInfo    *GeometryInfo
}

// Option configures a Table.
type Option func(*Table)

// WithFeatureIDColumn overrides the default feature-id column name.
func WithFeatureIDColumn(name string) Option {
	return func(t *Table) { t.featureID = name }
}

// New returns a manager for the named table. Spaces in the name are
// normalized to underscores. The table is neither created nor loaded until
// Create or one of the metadata accessors is called.
func New(db *storage.Database, cat *catalog.Catalog, logger zerolog.Logger, name string, opts ...Option) *Table {
	t := &Table{
		name:      schema.NormalizeTableName(name),
		featureID: schema.DefaultFeatureIDColumn,
		db:        db,
		cat:       cat,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logger.With().Str("table", t.name).Logger()
	return t
}

// Name returns the normalized table name.
func (t *Table) Name() string { return t.name }

// FeatureIDColumn returns the configured feature-id column name.
func (t *Table) FeatureIDColumn() string { return t.featureID }

// Create ensures the feature table exists: the physical table, its
// geometry-column registry row, its contents row, and one column-metadata
// row per column, all committed as one transaction.
//
// Creation is idempotent per the contents registry: if a contents row
// already exists for the table name, Create succeeds without touching
// anything. A table that exists physically but has no contents row is
// considered orphaned: it is dropped and recreated, with a warn log before
// the drop since the orphan's rows are lost.
//
// All validation (supported geometry type, resolvable geometry column,
// registered CRS) happens before any statement executes; a validation
// failure leaves the container untouched.
func (t *Table) Create(ctx context.Context, s *schema.FeatureSchema, extent *geom.Extent) error {
	def := *s
	def.Name = t.name
	def.FeatureIDColumn = t.featureID
	if err := def.Validate(); err != nil {
		return err
	}

	registered, err := t.cat.HasSpatialRefSys(ctx, def.Geometry.SRSID)
	if err != nil {
		return err
	}
	if !registered {
		return errors.Newf(ErrSRSNotDefined,
			"srs %d does not exist in the spatial-reference registry", def.Geometry.SRSID)
	}

	defined, err := t.cat.HasContents(ctx, t.name)
	if err != nil {
		return err
	}
	if defined {
		t.logger.Warn().Msg("table already defined in contents registry, create is a no-op")
		return nil
	}

	physical, err := t.db.TableExists(ctx, t.name)
	if err != nil {
		return err
	}
	if physical {
		t.logger.Warn().Msg("replacing orphaned table that has no contents registry row")
		if err := t.db.DropTable(ctx, t.name); err != nil {
			return errors.Wrapf(ErrOrphanDropFailed, err, "failed to drop orphaned table %s", t.name)
		}
	}

	stmts, err := t.buildCreateBatch(&def, extent, time.Now())
	if err != nil {
		return err
	}
	if err := t.db.ExecBatch(ctx, stmts); err != nil {
		return errors.Wrapf(ErrCreateFailed, err, "failed to create feature table %s", t.name)
	}

	t.logger.Info().
		Str("geometry_type", def.Geometry.Type.String()).
		Int("srs_id", def.Geometry.SRSID).
		Int("attributes", len(def.Attributes)).
		Msg("feature table created")

	// Reload eagerly so the snapshot reflects the committed catalog state.
	t.invalidate()
	return t.refresh(ctx)
}
