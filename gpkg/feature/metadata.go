package feature

import (
	"context"
	"time"

	"github.com/geoboxdev/geobox/gpkg/schema"
	"github.com/geoboxdev/geobox/gpkg/storage"
	"github.com/geoboxdev/geobox/pkg/errors"
	"github.com/go-spatial/geom"
)

// loaded reports whether the metadata cache holds a complete snapshot.
// Fields and geometry info load and fail as one unit, so checking both is
// enough to skip the refresh queries entirely.
func (t *Table) loaded() bool {
	return len(t.fields) > 0 && t.geomInfo != nil
}

func (t *Table) invalidate() {
	t.description = ""
	t.fields = nil
	t.bounds = nil
	t.lastChange = time.Time{}
	t.geomInfo = nil
}

// refresh populates the whole metadata cache in one pass: table-level
// summary from the contents registry, the physical column list from table
// introspection, the extended column metadata, and the geometry info.
//
// Bounds and last-change are optional decorations; failures reading them are
// logged and leave the values unset. Failures resolving the field list or
// the geometry info abort the refresh and leave the cache unloaded so the
// next access retries.
func (t *Table) refresh(ctx context.Context) error {
	if t.loaded() {
		return nil
	}

	description, bounds, lastChange := t.readContentsSummary(ctx)

	cols, err := t.db.TableInfo(ctx, t.name)
	if err != nil {
		return errors.Wrapf(ErrRefreshFailed, err, "failed to introspect table %s", t.name)
	}
	if len(cols) == 0 {
		return errors.Newf(ErrRefreshFailed, "table %s does not exist in the container", t.name)
	}

	extended, err := t.readColumnMetadata(ctx)
	if err != nil {
		return err
	}

	info, err := t.resolveGeometryInfo(ctx)
	if err != nil {
		return err
	}

	fields := make([]FieldMetadata, 0, len(cols))
	for _, col := range cols {
		if col.PrimaryKey && col.Name == schema.SurrogateKeyColumn {
			continue
		}
		field := FieldMetadata{
			Name:        col.Name,
			StorageType: col.Type,
			Binding:     storage.BindingForStorageType(col.Type),
			FeatureID:   col.Name == t.featureID,
			Geometry:    col.Name == info.ColumnName,
		}
		// Merge in catalog metadata when present; the physical storage type
		// always wins over anything the catalog says.
		if ext, ok := extended[col.Name]; ok {
			field.Extended = true
			field.DisplayName = ext.DisplayName
			field.Title = ext.Title
			field.Description = ext.Description
			field.MimeType = ext.MimeType
			field.ConstraintName = ext.ConstraintName
		}
		fields = append(fields, field)
	}

	t.description = description
	t.bounds = bounds
	t.lastChange = lastChange
	t.fields = fields
	t.geomInfo = info
	return nil
}

// readContentsSummary pulls the optional table-level decorations from the
// contents registry. Any failure here degrades to unset values.
func (t *Table) readContentsSummary(ctx context.Context) (string, *geom.Extent, time.Time) {
	rs, err := t.cat.Contents(ctx, t.name)
	if err != nil {
		t.logger.Warn().Err(err).Msg("contents summary unavailable, continuing without bounds")
		return "", nil, time.Time{}
	}
	if rs.Len() == 0 {
		return "", nil, time.Time{}
	}

	description := rs.GetString(0, "description")

	var bounds *geom.Extent
	minX, okMinX := rs.GetFloat(0, "min_x")
	minY, okMinY := rs.GetFloat(0, "min_y")
	maxX, okMaxX := rs.GetFloat(0, "max_x")
	maxY, okMaxY := rs.GetFloat(0, "max_y")
	if okMinX && okMinY && okMaxX && okMaxY {
		bounds = &geom.Extent{minX, minY, maxX, maxY}
	}

	var lastChange time.Time
	if raw := rs.GetString(0, "last_change"); raw != "" {
		ts, err := parseLastChange(raw)
		if err != nil {
			t.logger.Warn().Err(err).Str("last_change", raw).Msg("unparseable last_change, leaving unset")
		} else {
			lastChange = ts
		}
	}

	return description, bounds, lastChange
}

// readColumnMetadata loads the extended-column-metadata rows for this table,
// keyed by column name.
func (t *Table) readColumnMetadata(ctx context.Context) (map[string]FieldMetadata, error) {
	rs, err := t.cat.DataColumns(ctx, t.name)
	if err != nil {
		return nil, errors.Wrapf(ErrRefreshFailed, err, "failed to read column metadata for %s", t.name)
	}

	extended := make(map[string]FieldMetadata, rs.Len())
	for row := 0; row < rs.Len(); row++ {
		name := rs.GetString(row, "column_name")
		extended[name] = FieldMetadata{
			Name:           name,
			Extended:       true,
			FeatureID:      name == t.featureID,
			DisplayName:    rs.GetString(row, "name"),
			Title:          rs.GetString(row, "title"),
			Description:    rs.GetString(row, "description"),
			MimeType:       rs.GetString(row, "mime_type"),
			ConstraintName: rs.GetString(row, "constraint_name"),
		}
	}
	return extended, nil
}

// Fields returns the merged field list: one FieldMetadata per physical
// column (surrogate key excluded), enriched from the catalog where entries
// exist. Triggers a full refresh on first use. The error distinguishes
// failure from an empty-but-valid result.
func (t *Table) Fields(ctx context.Context) ([]FieldMetadata, error) {
	if err := t.refresh(ctx); err != nil {
		return nil, err
	}
	out := make([]FieldMetadata, len(t.fields))
	copy(out, t.fields)
	return out, nil
}

// Field returns a single field by column name.
func (t *Table) Field(ctx context.Context, name string) (FieldMetadata, error) {
	if err := t.refresh(ctx); err != nil {
		return FieldMetadata{}, err
	}
	for _, f := range t.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldMetadata{}, errors.Newf(ErrFieldNotFound, "table %s has no field %q", t.name, name)
}

// Bounds returns the spatial extent recorded in the contents registry.
// Best-effort: nil when the extent is unset or the refresh could not read
// it; hard refresh failures are logged, not returned.
func (t *Table) Bounds(ctx context.Context) *geom.Extent {
	if err := t.refresh(ctx); err != nil {
		t.logger.Warn().Err(err).Msg("metadata refresh failed while reading bounds")
		return nil
	}
	return t.bounds
}

// LastChange returns the contents-registry modification timestamp.
// Best-effort: ok is false when the timestamp is unset or unreadable.
func (t *Table) LastChange(ctx context.Context) (time.Time, bool) {
	if err := t.refresh(ctx); err != nil {
		t.logger.Warn().Err(err).Msg("metadata refresh failed while reading last change")
		return time.Time{}, false
	}
	if t.lastChange.IsZero() {
		return time.Time{}, false
	}
	return t.lastChange, true
}

// Description returns the contents-registry description of the table.
func (t *Table) Description(ctx context.Context) string {
	if err := t.refresh(ctx); err != nil {
		t.logger.Warn().Err(err).Msg("metadata refresh failed while reading description")
		return ""
	}
	return t.description
}

// GeometryInfo returns the resolved geometry descriptor. Unlike Bounds and
// LastChange this is a hard dependency: an unresolved geometry column or a
// dangling CRS reference is returned as an error, never defaulted.
func (t *Table) GeometryInfo(ctx context.Context) (GeometryInfo, error) {
	if err := t.refresh(ctx); err != nil {
		return GeometryInfo{}, err
	}
	return *t.geomInfo, nil
}

func parseLastChange(raw string) (time.Time, error) {
	if ts, err := time.Parse(LastChangeFormat, raw); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, raw)
}
