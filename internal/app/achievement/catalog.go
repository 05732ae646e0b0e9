package achievement

import (
	"fmt"
	"time"

	"github.com/screenlog/screenlog/internal/domain"
)

// colorPalette is cycled by the dynamic genre achievements and reused
// as the fixed definitions' color tokens.
var colorPalette = []string{
	"crimson", "amber", "emerald", "indigo", "violet",
	"teal", "rose", "slate", "lime", "cyan",
}

// premiumAudioFormats is the allow-list of audio tags that count as
// premium for the Dolby Devotee ladder.
var premiumAudioFormats = map[string]bool{
	"Dolby Atmos":          true,
	"Dolby TrueHD":         true,
	"Dolby Digital Plus":   true,
	"DTS:X":                true,
	"DTS-HD Master Audio":  true,
}

// premiumVideoFormats is the allow-list of video tags that count as
// premium for the Pixel Perfect ladder.
var premiumVideoFormats = map[string]bool{
	"4K":            true,
	"4K UHD":        true,
	"8K":            true,
	"Dolby Vision":  true,
	"HDR10":         true,
	"HDR10+":        true,
	"IMAX Enhanced": true,
}

// predicate decides whether one qualifying completed record contributed
// to an achievement. nil means the default "every completed record".
type predicate func(rec domain.WatchRecord, entry domain.MediaEntry) bool

// definition pairs one achievement's display identity with the metric
// that drives its ladder and the predicate used for drill-down. Keeping
// both here is what prevents the definition list and the contribution
// filter from drifting apart.
type definition struct {
	id          string
	name        string
	description string
	category    domain.AchievementCategory
	color       string
	baseTargets []float64
	metric      func(s snapshot) float64
	match       predicate
}

// snapshot bundles the extracted metrics with the compound values the
// builder derives inline (values that need a second history pass).
type snapshot struct {
	m domain.Metrics
	x extras
}

// extras holds compound metrics not part of the flat metric set.
type extras struct {
	longMovies      int // movies >= 150 min
	epicTitles      int // unique titles past the epic size threshold
	finishedSeries  int // series with every declared episode completed
	finishedSeasons int // (series, season) pairs fully completed
	premiumAudio    int
	premiumVideo    int
	punctual        int // completed within 24h of the scheduled date
	resumed         int // completed with nonzero elapsed seconds
	bigParties      int // watches with 3+ co-viewers
	repeats         int // completions beyond the first of the same item
	uniqueActors    int
	scheduledDone   int // completed records that carried a scheduled date
	completionOK    bool // >= 80% of scheduled records ended completed
}

// BuildAchievements computes the full ordered achievement list from the
// current history and catalog snapshot. Output order is declaration
// order followed by the dynamic genre tail; callers do any user-facing
// sorting themselves. A metric of 0 yields an all-locked ladder, which
// is normal, not an error.
func BuildAchievements(history []domain.WatchRecord, catalog map[string]domain.MediaEntry, now time.Time) []domain.Achievement {
	s := snapshot{
		m: ExtractMetrics(history, catalog, now),
		x: deriveExtras(history, catalog),
	}

	defs := fixedDefinitions()
	out := make([]domain.Achievement, 0, len(defs)+10)
	for _, def := range defs {
		out = append(out, domain.Achievement{
			ID:          def.id,
			Name:        def.name,
			Description: def.description,
			Category:    def.category,
			Color:       def.color,
			Levels:      GenerateLevels(def.baseTargets, def.metric(s)),
		})
	}

	// Dynamic tail: one achievement per genre, first 10 genres by
	// first-appearance order (intentionally not sorted by count).
	for i, genre := range topGenres(s.m, 10) {
		out = append(out, domain.Achievement{
			ID:          "genre_" + slug(genre),
			Name:        genre + " Fan",
			Description: fmt.Sprintf("Watch or read %s titles", genre),
			Category:    domain.CatGenres,
			Color:       colorPalette[i%len(colorPalette)],
			Levels:      GenerateLevels([]float64{5, 10, 25}, float64(s.m.GenreCounts[genre])),
		})
	}

	return out
}

// deriveExtras runs the inline compound computations over the history.
// Same qualification rules as ExtractMetrics: completed, resolvable.
func deriveExtras(history []domain.WatchRecord, catalog map[string]domain.MediaEntry) extras {
	var x extras

	epicSeen := map[string]bool{}
	actorSeen := map[string]bool{}
	itemSeen := map[string]bool{}
	episodesDone := map[string]map[[2]int]bool{}
	scheduledTotal := 0

	for _, rec := range history {
		entry, ok := catalog[rec.MediaID]
		if !ok {
			continue
		}
		if !rec.ScheduledAt.IsZero() {
			scheduledTotal++
			if rec.IsCompleted() {
				x.scheduledDone++
			}
		}
		if !rec.IsCompleted() {
			continue
		}

		if entry.Type == domain.MediaMovie && entry.RuntimeMinutes >= 150 {
			x.longMovies++
		}
		if isEpic(entry) && !epicSeen[rec.MediaID] {
			epicSeen[rec.MediaID] = true
			x.epicTitles++
		}
		if entry.Type == domain.MediaSeries {
			if episodesDone[rec.MediaID] == nil {
				episodesDone[rec.MediaID] = map[[2]int]bool{}
			}
			episodesDone[rec.MediaID][[2]int{rec.Season, rec.Episode}] = true
		}
		if premiumAudioFormats[rec.AudioFormat] {
			x.premiumAudio++
		}
		if premiumVideoFormats[rec.VideoFormat] {
			x.premiumVideo++
		}
		if isPunctual(rec) {
			x.punctual++
		}
		if rec.ElapsedSeconds > 0 {
			x.resumed++
		}
		if len(rec.Viewers) >= 3 {
			x.bigParties++
		}

		item := fmt.Sprintf("%s/%d/%d", rec.MediaID, rec.Season, rec.Episode)
		if itemSeen[item] {
			x.repeats++
		}
		itemSeen[item] = true

		for _, actor := range entry.Actors {
			if !actorSeen[actor] {
				actorSeen[actor] = true
				x.uniqueActors++
			}
		}
	}

	for id, done := range episodesDone {
		entry := catalog[id]
		total := entry.TotalEpisodes()
		if total > 0 && len(done) >= total {
			x.finishedSeries++
		}
		for season := 1; season <= len(entry.EpisodesPerSeason); season++ {
			want := entry.EpisodesPerSeason[season-1]
			if want == 0 {
				continue
			}
			have := 0
			for key := range done {
				if key[0] == season {
					have++
				}
			}
			if have >= want {
				x.finishedSeasons++
			}
		}
	}

	x.completionOK = scheduledTotal > 0 &&
		float64(x.scheduledDone)/float64(scheduledTotal) >= 0.8
	return x
}

// isEpic reports whether a title clears the compound size threshold:
// a 3-hour movie, a 50-episode series, or a 500-page book.
func isEpic(entry domain.MediaEntry) bool {
	switch entry.Type {
	case domain.MediaMovie:
		return entry.RuntimeMinutes >= 180
	case domain.MediaSeries:
		return entry.TotalEpisodes() >= 50
	case domain.MediaBook:
		return entry.TotalPages >= 500
	}
	return false
}

// isPunctual reports completion within 24 hours of the scheduled date.
func isPunctual(rec domain.WatchRecord) bool {
	if rec.ScheduledAt.IsZero() {
		return false
	}
	ts := rec.EffectiveTime()
	if ts.IsZero() {
		return false
	}
	diff := ts.Sub(rec.ScheduledAt)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 24*time.Hour
}

// effectiveRating is the record's own rating, falling back to the
// catalog entry's rating when the record carries none.
func effectiveRating(rec domain.WatchRecord, entry domain.MediaEntry) float64 {
	if rec.Rating > 0 {
		return rec.Rating
	}
	return entry.Rating
}

func minInt(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// slug normalizes a free-text genre tag into an id fragment.
func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '-', r == '_':
			out = append(out, '_')
		}
	}
	return string(out)
}
