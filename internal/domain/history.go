package domain

import "time"

// WatchStatus is the lifecycle state of a watch/read record.
type WatchStatus string

const (
	StatusScheduled  WatchStatus = "scheduled"
	StatusInProgress WatchStatus = "in_progress"
	StatusPaused     WatchStatus = "paused"
	StatusCompleted  WatchStatus = "completed"
)

// WatchRecord is one watch/read event tying the user to a media entry.
// Only completed records feed the achievement engine.
type WatchRecord struct {
	ID      string      `json:"id"`
	MediaID string      `json:"media_id"`
	Status  WatchStatus `json:"status"`

	// Series episodes only.
	Season  int `json:"season,omitempty"`
	Episode int `json:"episode,omitempty"`

	Rating      float64  `json:"rating,omitempty"` // 1–5, 0 = unrated
	AudioFormat string   `json:"audio_format,omitempty"`
	VideoFormat string   `json:"video_format,omitempty"`
	Device      string   `json:"device,omitempty"`
	Viewers     []string `json:"viewers,omitempty"` // non-empty = shared watch

	CompletedAt time.Time `json:"completed_at,omitempty"`
	WatchedAt   time.Time `json:"watched_at,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`

	// Resume detection: seconds already elapsed when the session started.
	ElapsedSeconds int `json:"elapsed_seconds,omitempty"`

	// Punctuality: when the watch was originally scheduled for.
	ScheduledAt time.Time `json:"scheduled_at,omitempty"`
}

// EffectiveTime returns the best-known completion instant, falling back
// through CompletedAt → WatchedAt → CreatedAt. Zero if none is set.
func (w WatchRecord) EffectiveTime() time.Time {
	switch {
	case !w.CompletedAt.IsZero():
		return w.CompletedAt
	case !w.WatchedAt.IsZero():
		return w.WatchedAt
	default:
		return w.CreatedAt
	}
}

// IsCompleted reports whether this record counts toward achievements.
func (w WatchRecord) IsCompleted() bool {
	return w.Status == StatusCompleted
}

// IsShared reports whether the watch had co-viewers.
func (w WatchRecord) IsShared() bool {
	return len(w.Viewers) > 0
}
