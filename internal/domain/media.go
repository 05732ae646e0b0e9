// Package domain holds the core screenlog types.
// Pure data plus small methods — no I/O, no external dependencies.
package domain

import "time"

// MediaType classifies a trackable title.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
	MediaBook   MediaType = "book"
)

// MediaEntry is one trackable title in the library catalog.
// Runtime metadata depends on the type: movies carry RuntimeMinutes,
// series carry per-episode runtimes, books carry page counts.
type MediaEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Type  MediaType `json:"type"`

	// Movies (and the per-entry fallback for series episodes).
	RuntimeMinutes int `json:"runtime_minutes,omitempty"`

	// Series. EpisodeRuntimes is season-major: EpisodeRuntimes[season-1][episode-1].
	SeasonsCount      int     `json:"seasons_count,omitempty"`
	EpisodesPerSeason []int   `json:"episodes_per_season,omitempty"`
	EpisodeRuntimes   [][]int `json:"episode_runtimes,omitempty"`

	// Books. PagesRead is the current reading position snapshot.
	TotalPages int `json:"total_pages,omitempty"`
	PagesRead  int `json:"pages_read,omitempty"`

	Genres    []string  `json:"genres,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Language  string    `json:"language,omitempty"`
	Actors    []string  `json:"actors,omitempty"`
	Rating    float64   `json:"rating,omitempty"` // 1–5, 0 = unrated
	PosterURL string    `json:"poster_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// EpisodeRuntime resolves the runtime for a specific episode.
// Uses the per-episode table when present, falling back to the
// entry-level RuntimeMinutes.
func (m MediaEntry) EpisodeRuntime(season, episode int) int {
	if season >= 1 && season <= len(m.EpisodeRuntimes) {
		eps := m.EpisodeRuntimes[season-1]
		if episode >= 1 && episode <= len(eps) && eps[episode-1] > 0 {
			return eps[episode-1]
		}
	}
	return m.RuntimeMinutes
}

// TotalEpisodes returns the declared episode count across all seasons.
func (m MediaEntry) TotalEpisodes() int {
	total := 0
	for _, n := range m.EpisodesPerSeason {
		total += n
	}
	return total
}
