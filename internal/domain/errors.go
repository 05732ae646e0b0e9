package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Library errors
	ErrMediaNotFound    = errors.New("media entry not found")
	ErrInvalidMediaType = errors.New("media type must be movie, series, or book")

	// History errors
	ErrWatchNotFound = errors.New("watch record not found")

	// Achievement errors
	ErrAchievementNotFound = errors.New("achievement not found")
)
