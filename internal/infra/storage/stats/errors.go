package stats

import "errors"

var (
	ErrStatsNotFound = errors.New("stats.repository: stats not found")
	ErrBuildQuery    = errors.New("stats.repository: failed to build query")
	ErrExecQuery     = errors.New("stats.repository: failed to execute query")
	ErrScanRow       = errors.New("stats.repository: failed to scan row")
)
