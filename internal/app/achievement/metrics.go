// Package achievement implements the screenlog achievement progress engine.
// Pure functions over a watch-history snapshot and a media catalog: no I/O,
// no ambient clock, no state between calls. Unlocked-ness is recomputed as
// current >= target on every invocation — there is no unlock event.
package achievement

import (
	"time"

	"github.com/screenlog/screenlog/internal/domain"
)

// ExtractMetrics scans the history once and derives the flat metric
// snapshot all achievement ladders are built from.
//
// Only completed records whose MediaID resolves in the catalog are
// counted; dangling references are dropped silently. Missing optional
// fields simply do not increment their bucket — nothing here can fail.
//
// now anchors the streak and feeds nothing else; callers hold it fixed
// in tests for deterministic output.
func ExtractMetrics(history []domain.WatchRecord, catalog map[string]domain.MediaEntry, now time.Time) domain.Metrics {
	m := domain.Metrics{
		GenreCounts:       map[string]int{},
		PlatformCounts:    map[string]int{},
		DeviceCounts:      map[string]int{},
		LanguageCounts:    map[string]int{},
		AudioFormatCounts: map[string]int{},
		VideoFormatCounts: map[string]int{},
	}

	seenSeries := map[string]bool{}
	seenBooks := map[string]bool{}
	seenTitles := map[string]bool{}
	perDay := map[string]int{}

	for _, rec := range history {
		entry, ok := catalog[rec.MediaID]
		if !ok || !rec.IsCompleted() {
			continue
		}

		m.TotalWatches++
		if !seenTitles[rec.MediaID] {
			seenTitles[rec.MediaID] = true
			m.UniqueTitles++
		}

		switch entry.Type {
		case domain.MediaMovie:
			m.MovieCount++
			m.TotalMinutes += entry.RuntimeMinutes
		case domain.MediaSeries:
			m.EpisodeCount++
			m.TotalMinutes += entry.EpisodeRuntime(rec.Season, rec.Episode)
			if !seenSeries[rec.MediaID] {
				seenSeries[rec.MediaID] = true
				m.UniqueSeries++
			}
		case domain.MediaBook:
			m.BookCount++
			if !seenBooks[rec.MediaID] {
				seenBooks[rec.MediaID] = true
				m.UniqueBooks++
				// Pages come from the catalog snapshot, once per book,
				// no matter how many reading sessions exist.
				m.PagesRead += entry.PagesRead
			}
		}

		rating := rec.Rating
		if rating == 0 {
			rating = entry.Rating
		}
		if rating > 0 {
			m.RatedCount++
			m.RatingSum += rating
			if rating >= 5 {
				m.FiveStarCount++
			}
			if rating >= 4 {
				m.FourPlusCount++
			}
		}

		ts := rec.EffectiveTime()
		if !ts.IsZero() {
			hour := ts.Hour()
			switch {
			case hour >= 6 && hour < 12:
				m.MorningCount++
			case hour >= 18:
				m.EveningCount++
			case hour < 6:
				m.NightCount++
			}
			switch ts.Weekday() {
			case time.Saturday, time.Sunday:
				m.WeekendCount++
			default:
				m.WeekdayCount++
			}
			day := ts.Format("2006-01-02")
			perDay[day]++
			if perDay[day] > m.MaxPerDay {
				m.MaxPerDay = perDay[day]
			}
		}

		if rec.IsShared() {
			m.SharedCount++
		} else {
			m.SoloCount++
		}

		for _, g := range entry.Genres {
			if m.GenreCounts[g] == 0 {
				m.GenreOrder = append(m.GenreOrder, g)
			}
			m.GenreCounts[g]++
		}
		if entry.Platform != "" {
			m.PlatformCounts[entry.Platform]++
		}
		if entry.Language != "" {
			m.LanguageCounts[entry.Language]++
		}
		if rec.Device != "" {
			m.DeviceCounts[rec.Device]++
		}
		if rec.AudioFormat != "" {
			m.AudioFormatCounts[rec.AudioFormat]++
		}
		if rec.VideoFormat != "" {
			m.VideoFormatCounts[rec.VideoFormat]++
		}
	}

	m.CurrentStreak = streakDays(perDay, now)
	return m
}

// streakDays counts consecutive calendar days with at least one watch,
// walking backward from now's calendar day. The anchor is strict: a run
// that ended yesterday reports 0 until something is watched today.
func streakDays(perDay map[string]int, now time.Time) int {
	if len(perDay) == 0 {
		return 0
	}
	streak := 0
	day := now
	for {
		if perDay[day.Format("2006-01-02")] == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// topGenres returns at most n genres in first-appearance order.
func topGenres(m domain.Metrics, n int) []string {
	if len(m.GenreOrder) <= n {
		return m.GenreOrder
	}
	return m.GenreOrder[:n]
}
