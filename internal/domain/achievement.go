// Achievement types: the derived, ephemeral output of the progress engine.
// Everything here is recomputed from scratch on every invocation — there
// is no unlock event, persisted flag, or partial-update state.
package domain

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatTime    AchievementCategory = "time"
	CatMovies  AchievementCategory = "movies"
	CatSeries  AchievementCategory = "series"
	CatBooks   AchievementCategory = "books"
	CatGenres  AchievementCategory = "genres"
	CatSocial  AchievementCategory = "social"
	CatHabits  AchievementCategory = "habits"
	CatQuality AchievementCategory = "quality"
	CatVariety AchievementCategory = "variety"
)

// Level is one rung of an achievement's ladder.
// Index is contiguous from 1; Target is strictly increasing within one
// achievement; Unlocked is recomputed as Current >= Target every time.
type Level struct {
	Index       int     `json:"index"`
	Target      float64 `json:"target"`
	Current     float64 `json:"current"`
	ProgressPct float64 `json:"progress_pct"`
	Unlocked    bool    `json:"unlocked"`
}

// Achievement is a named progress track over one derived metric.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Color       string              `json:"color"`
	Levels      []Level             `json:"levels"`
}

// UnlockedCount returns how many levels of this achievement are unlocked.
func (a Achievement) UnlockedCount() int {
	n := 0
	for _, l := range a.Levels {
		if l.Unlocked {
			n++
		}
	}
	return n
}

// NextLevel returns the first locked level, or nil if all are unlocked.
func (a Achievement) NextLevel() *Level {
	for i := range a.Levels {
		if !a.Levels[i].Unlocked {
			return &a.Levels[i]
		}
	}
	return nil
}

// Contribution is one history record rendered for the achievement
// detail drill-down. Subtitle and Value are context-dependent: date,
// season/episode, page range, format, or viewer count.
type Contribution struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url,omitempty"`
	Subtitle  string `json:"subtitle,omitempty"`
	Value     string `json:"value,omitempty"`
	Status    string `json:"status"`
}

// Metrics is the flat snapshot of scalar and count-map metrics derived
// from the watch history. Ephemeral: recomputed in full on each call.
type Metrics struct {
	TotalMinutes  int `json:"total_minutes"`
	TotalWatches  int `json:"total_watches"`
	MovieCount    int `json:"movie_count"`
	EpisodeCount  int `json:"episode_count"`
	BookCount     int `json:"book_count"`
	UniqueSeries  int `json:"unique_series"`
	UniqueBooks   int `json:"unique_books"`
	UniqueTitles  int `json:"unique_titles"`
	PagesRead     int `json:"pages_read"`
	FiveStarCount int `json:"five_star_count"`
	FourPlusCount int `json:"four_plus_count"`
	RatedCount    int `json:"rated_count"`
	RatingSum     float64 `json:"rating_sum"`

	MorningCount int `json:"morning_count"`
	EveningCount int `json:"evening_count"`
	NightCount   int `json:"night_count"`
	WeekendCount int `json:"weekend_count"`
	WeekdayCount int `json:"weekday_count"`

	SharedCount int `json:"shared_count"`
	SoloCount   int `json:"solo_count"`

	CurrentStreak int `json:"current_streak"`
	MaxPerDay     int `json:"max_per_day"`

	GenreCounts       map[string]int `json:"genre_counts"`
	PlatformCounts    map[string]int `json:"platform_counts"`
	DeviceCounts      map[string]int `json:"device_counts"`
	LanguageCounts    map[string]int `json:"language_counts"`
	AudioFormatCounts map[string]int `json:"audio_format_counts"`
	VideoFormatCounts map[string]int `json:"video_format_counts"`

	// GenreOrder lists genres by first appearance in the history scan.
	// Map iteration order is randomized in Go, so the dynamic genre
	// achievements key off this slice to stay deterministic.
	GenreOrder []string `json:"genre_order"`
}

// AverageRating returns the mean of all rated watches, 0 if none.
func (m Metrics) AverageRating() float64 {
	if m.RatedCount == 0 {
		return 0
	}
	return m.RatingSum / float64(m.RatedCount)
}
