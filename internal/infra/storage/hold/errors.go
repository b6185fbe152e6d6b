package hold

import "errors"

var (
	ErrHoldNotFound = errors.New("hold.repository: hold not found")
	ErrSlotConflict = errors.New("hold.repository: interval conflict")
	ErrBuildQuery   = errors.New("hold.repository: failed to build query")
	ErrExecQuery    = errors.New("hold.repository: failed to execute query")
	ErrScanRow      = errors.New("hold.repository: failed to scan row")
)
