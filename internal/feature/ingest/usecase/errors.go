// Package usecase implements the daily ingestion pipeline for the ingest feature.
package usecase

import "errors"

var (
	// ErrInvalidWatchlist is returned when a watch-list entry is empty or not alphanumeric.
	// It is raised before any request to the exchange is made.
	ErrInvalidWatchlist = errors.New("invalid stock codes")

	// ErrFeedUnavailable wraps transport-level failures of the daily report fetch.
	ErrFeedUnavailable = errors.New("daily report unavailable")
)
