package storage

import "github.com/geoboxdev/geobox/pkg/errors"

// Storage-specific error codes
var (
	ErrOpenFailed      = errors.MustNewCode("storage.open_failed")
	ErrPingFailed      = errors.MustNewCode("storage.ping_failed")
	ErrQueryFailed     = errors.MustNewCode("storage.query_failed")
	ErrScanFailed      = errors.MustNewCode("storage.scan_failed")
	ErrExecFailed      = errors.MustNewCode("storage.exec_failed")
	ErrBatchFailed     = errors.MustNewCode("storage.batch_failed")
	ErrTableInfoFailed = errors.MustNewCode("storage.table_info_failed")
	ErrDropFailed      = errors.MustNewCode("storage.drop_failed")
	ErrUnknownBinding  = errors.MustNewCode("storage.unknown_binding")
	ErrCloseFailed     = errors.MustNewCode("storage.close_failed")
)
