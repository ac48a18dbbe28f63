package db

import "errors"

// Domain-level database error sentinels.
var (
	// ErrAnalysisNotFound is returned when a read targets an unknown analysis id.
	ErrAnalysisNotFound = errors.New("analysis not found")
)
