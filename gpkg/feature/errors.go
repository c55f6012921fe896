package feature

import "github.com/geoboxdev/geobox/pkg/errors"

// Feature table error codes. Reference-integrity failures (dangling CRS,
// missing or ambiguous geometry-column rows) are deliberately distinct so
// callers can tell a broken catalog link from a broken table.
var (
	ErrSRSNotDefined            = errors.MustNewCode("feature.srs_not_defined")
	ErrSRSDangling              = errors.MustNewCode("feature.srs_dangling")
	ErrGeometryColumnsMissing   = errors.MustNewCode("feature.geometry_columns_missing")
	ErrGeometryColumnsAmbiguous = errors.MustNewCode("feature.geometry_columns_ambiguous")
	ErrCreateFailed             = errors.MustNewCode("feature.create_failed")
	ErrRefreshFailed            = errors.MustNewCode("feature.refresh_failed")
	ErrFieldNotFound            = errors.MustNewCode("feature.field_not_found")
	ErrOrphanDropFailed         = errors.MustNewCode("feature.orphan_drop_failed")
)
