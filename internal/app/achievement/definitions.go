package achievement

import (
	"time"

	"github.com/screenlog/screenlog/internal/domain"
)

// fixedDefinitions returns the static achievement catalog in display
// order. Each entry binds a metric to its base targets and, where the
// achievement is more specific than "any completed watch", the match
// predicate the contribution drill-down uses.
func fixedDefinitions() []definition {
	return []definition{
		// ── Time ───────────────────────────────────────────────────────
		{
			id: "time_master", name: "Time Master",
			description: "Total minutes watched across everything",
			category:    domain.CatTime, color: "indigo",
			baseTargets: []float64{60, 300, 600, 1500, 3000},
			metric:      func(s snapshot) float64 { return float64(s.m.TotalMinutes) },
		},
		{
			id: "century_club", name: "Century Club",
			description: "Completed watches and reads, all types",
			category:    domain.CatTime, color: "amber",
			baseTargets: []float64{10, 25, 50, 100},
			metric:      func(s snapshot) float64 { return float64(s.m.TotalWatches) },
		},

		// ── Movies ─────────────────────────────────────────────────────
		{
			id: "movie_buff", name: "Movie Buff",
			description: "Movies completed",
			category:    domain.CatMovies, color: "crimson",
			baseTargets: []float64{1, 5, 10, 25, 50},
			metric:      func(s snapshot) float64 { return float64(s.m.MovieCount) },
			match:       isMovie,
		},
		{
			id: "long_haul", name: "Long Haul",
			description: "Movies of 150 minutes or more",
			category:    domain.CatMovies, color: "slate",
			baseTargets: []float64{1, 5, 10},
			metric:      func(s snapshot) float64 { return float64(s.x.longMovies) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return entry.Type == domain.MediaMovie && entry.RuntimeMinutes >= 150
			},
		},
		{
			id: "epic_completer", name: "Epic Completer",
			description: "Titles past the epic threshold: 3h movies, 50-episode series, 500-page books",
			category:    domain.CatMovies, color: "violet",
			baseTargets: []float64{1, 3, 5},
			metric:      func(s snapshot) float64 { return float64(s.x.epicTitles) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return isEpic(entry)
			},
		},

		// ── Series ─────────────────────────────────────────────────────
		{
			id: "episode_addict", name: "Episode Addict",
			description: "Series episodes completed",
			category:    domain.CatSeries, color: "teal",
			baseTargets: []float64{1, 10, 25, 50, 100},
			metric:      func(s snapshot) float64 { return float64(s.m.EpisodeCount) },
			match:       isSeries,
		},
		{
			id: "series_collector", name: "Series Collector",
			description: "Distinct series watched",
			category:    domain.CatSeries, color: "cyan",
			baseTargets: []float64{1, 3, 5, 10},
			metric:      func(s snapshot) float64 { return float64(s.m.UniqueSeries) },
			match:       isSeries,
		},
		{
			id: "series_finisher", name: "Series Finisher",
			description: "Series completed down to the last episode",
			category:    domain.CatSeries, color: "emerald",
			baseTargets: []float64{1, 3, 5, 10},
			metric:      func(s snapshot) float64 { return float64(s.x.finishedSeries) },
			match:       isSeries,
		},
		{
			id: "season_sweeper", name: "Season Sweeper",
			description: "Full seasons completed",
			category:    domain.CatSeries, color: "lime",
			baseTargets: []float64{1, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.x.finishedSeasons) },
			match:       isSeries,
		},

		// ── Books ──────────────────────────────────────────────────────
		{
			id: "bookworm", name: "Bookworm",
			description: "Distinct books finished",
			category:    domain.CatBooks, color: "amber",
			baseTargets: []float64{1, 3, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.m.UniqueBooks) },
			match:       isBook,
		},
		{
			id: "page_turner", name: "Page Turner",
			description: "Cumulative pages read",
			category:    domain.CatBooks, color: "rose",
			baseTargets: []float64{100, 500, 1000, 2500},
			metric:      func(s snapshot) float64 { return float64(s.m.PagesRead) },
			match:       isBook,
		},

		// ── Quality ────────────────────────────────────────────────────
		{
			id: "five_star", name: "Five Star",
			description: "Watches rated a full five stars",
			category:    domain.CatQuality, color: "amber",
			baseTargets: []float64{1, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.m.FiveStarCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return effectiveRating(rec, entry) >= 5
			},
		},
		{
			id: "critic", name: "Critic",
			description: "Watches you rated",
			category:    domain.CatQuality, color: "slate",
			baseTargets: []float64{5, 10, 25, 50},
			metric:      func(s snapshot) float64 { return float64(s.m.RatedCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return effectiveRating(rec, entry) > 0
			},
		},
		{
			id: "crowd_pleaser", name: "Crowd Pleaser",
			description: "Watches rated four stars or better",
			category:    domain.CatQuality, color: "emerald",
			baseTargets: []float64{5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.m.FourPlusCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return effectiveRating(rec, entry) >= 4
			},
		},
		{
			id: "dolby_devotee", name: "Dolby Devotee",
			description: "Watches in a premium audio format",
			category:    domain.CatQuality, color: "indigo",
			baseTargets: []float64{1, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.x.premiumAudio) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return premiumAudioFormats[rec.AudioFormat]
			},
		},
		{
			id: "pixel_perfect", name: "Pixel Perfect",
			description: "Watches in a premium video format",
			category:    domain.CatQuality, color: "violet",
			baseTargets: []float64{1, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.x.premiumVideo) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return premiumVideoFormats[rec.VideoFormat]
			},
		},

		// ── Habits ─────────────────────────────────────────────────────
		{
			id: "streak_keeper", name: "Streak Keeper",
			description: "Consecutive days with at least one watch",
			category:    domain.CatHabits, color: "crimson",
			baseTargets: []float64{3, 7, 14, 30},
			metric:      func(s snapshot) float64 { return float64(s.m.CurrentStreak) },
		},
		{
			id: "early_bird", name: "Early Bird",
			description: "Morning watches (6:00–12:00)",
			category:    domain.CatHabits, color: "amber",
			baseTargets: []float64{1, 5, 15, 30},
			metric:      func(s snapshot) float64 { return float64(s.m.MorningCount) },
			match:       inHourRange(6, 12),
		},
		{
			id: "night_owl", name: "Night Owl",
			description: "Night watches (midnight–6:00)",
			category:    domain.CatHabits, color: "indigo",
			baseTargets: []float64{1, 5, 15, 30},
			metric:      func(s snapshot) float64 { return float64(s.m.NightCount) },
			match:       inHourRange(0, 6),
		},
		{
			id: "prime_timer", name: "Prime Timer",
			description: "Evening watches (18:00–midnight)",
			category:    domain.CatHabits, color: "violet",
			baseTargets: []float64{5, 15, 30, 60},
			metric:      func(s snapshot) float64 { return float64(s.m.EveningCount) },
			match:       inHourRange(18, 24),
		},
		{
			id: "weekend_warrior", name: "Weekend Warrior",
			description: "Watches on Saturday or Sunday",
			category:    domain.CatHabits, color: "teal",
			baseTargets: []float64{5, 10, 25, 50},
			metric:      func(s snapshot) float64 { return float64(s.m.WeekendCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				ts := rec.EffectiveTime()
				return !ts.IsZero() && (ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday)
			},
		},
		{
			id: "weekday_regular", name: "Weekday Regular",
			description: "Watches on working days",
			category:    domain.CatHabits, color: "slate",
			baseTargets: []float64{5, 15, 30, 60},
			metric:      func(s snapshot) float64 { return float64(s.m.WeekdayCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				ts := rec.EffectiveTime()
				return !ts.IsZero() && ts.Weekday() != time.Saturday && ts.Weekday() != time.Sunday
			},
		},
		{
			id: "marathoner", name: "Marathoner",
			description: "Most watches in a single day",
			category:    domain.CatHabits, color: "rose",
			baseTargets: []float64{2, 3, 5, 8},
			metric:      func(s snapshot) float64 { return float64(s.m.MaxPerDay) },
		},
		{
			id: "completion_master", name: "Completion Master",
			description: "Scheduled watches seen through, once 80% of your schedule sticks",
			category:    domain.CatHabits, color: "emerald",
			baseTargets: []float64{5, 15, 30, 60},
			metric: func(s snapshot) float64 {
				if !s.x.completionOK {
					return 0
				}
				return float64(s.x.scheduledDone)
			},
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return !rec.ScheduledAt.IsZero()
			},
		},
		{
			id: "punctual_watcher", name: "Punctual Watcher",
			description: "Completed within 24 hours of the scheduled date",
			category:    domain.CatHabits, color: "cyan",
			baseTargets: []float64{1, 5, 15, 30},
			metric:      func(s snapshot) float64 { return float64(s.x.punctual) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return isPunctual(rec)
			},
		},
		{
			id: "comeback_king", name: "Comeback King",
			description: "Paused sessions picked back up and finished",
			category:    domain.CatHabits, color: "lime",
			baseTargets: []float64{1, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.x.resumed) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return rec.ElapsedSeconds > 0
			},
		},

		// ── Social ─────────────────────────────────────────────────────
		{
			id: "social_butterfly", name: "Social Butterfly",
			description: "Watches shared with at least one other viewer",
			category:    domain.CatSocial, color: "rose",
			baseTargets: []float64{1, 5, 10, 25},
			metric:      func(s snapshot) float64 { return float64(s.m.SharedCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return rec.IsShared()
			},
		},
		{
			id: "solo_sessions", name: "Solo Sessions",
			description: "Watches enjoyed alone",
			category:    domain.CatSocial, color: "slate",
			baseTargets: []float64{5, 15, 30, 60},
			metric:      func(s snapshot) float64 { return float64(s.m.SoloCount) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return !rec.IsShared()
			},
		},
		{
			id: "watch_party", name: "Watch Party",
			description: "Watches with three or more co-viewers",
			category:    domain.CatSocial, color: "violet",
			baseTargets: []float64{1, 3, 5},
			metric:      func(s snapshot) float64 { return float64(s.x.bigParties) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return len(rec.Viewers) >= 3
			},
		},

		// ── Variety ────────────────────────────────────────────────────
		{
			id: "genre_explorer", name: "Genre Explorer",
			description: "Distinct genres sampled",
			category:    domain.CatVariety, color: "emerald",
			baseTargets: []float64{3, 5, 10, 15},
			metric:      func(s snapshot) float64 { return float64(len(s.m.GenreCounts)) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return len(entry.Genres) > 0
			},
		},
		{
			id: "platform_hopper", name: "Platform Hopper",
			description: "Distinct platforms watched on",
			category:    domain.CatVariety, color: "cyan",
			baseTargets: []float64{2, 3, 5, 8},
			metric:      func(s snapshot) float64 { return float64(len(s.m.PlatformCounts)) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return entry.Platform != ""
			},
		},
		{
			id: "polyglot", name: "Polyglot",
			description: "Distinct languages watched in",
			category:    domain.CatVariety, color: "teal",
			baseTargets: []float64{2, 3, 5},
			metric:      func(s snapshot) float64 { return float64(len(s.m.LanguageCounts)) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return entry.Language != ""
			},
		},
		{
			id: "device_juggler", name: "Device Juggler",
			description: "Distinct devices watched on",
			category:    domain.CatVariety, color: "lime",
			baseTargets: []float64{2, 3, 5},
			metric:      func(s snapshot) float64 { return float64(len(s.m.DeviceCounts)) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return rec.Device != ""
			},
		},
		{
			id: "star_gazer", name: "Star Gazer",
			description: "Distinct actors seen",
			category:    domain.CatVariety, color: "amber",
			baseTargets: []float64{10, 25, 50, 100},
			metric:      func(s snapshot) float64 { return float64(s.x.uniqueActors) },
			match: func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
				return len(entry.Actors) > 0
			},
		},
		{
			id: "balanced_viewer", name: "Balanced Viewer",
			description: "Movies, episodes, and books in equal measure",
			category:    domain.CatVariety, color: "indigo",
			baseTargets: []float64{1, 3, 5, 10},
			metric: func(s snapshot) float64 {
				return float64(minInt(s.m.MovieCount, s.m.EpisodeCount, s.m.UniqueBooks))
			},
		},
		{
			id: "mixed_media_maestro", name: "Mixed Media Maestro",
			description: "5 movies, 5 episodes, and 3 books — all at once",
			category:    domain.CatVariety, color: "crimson",
			baseTargets: []float64{1},
			metric: func(s snapshot) float64 {
				if s.m.MovieCount >= 5 && s.m.EpisodeCount >= 5 && s.m.UniqueBooks >= 3 {
					return 1
				}
				return 0
			},
		},
		{
			id: "rewatcher", name: "Rewatcher",
			description: "Favorites completed more than once",
			category:    domain.CatVariety, color: "rose",
			baseTargets: []float64{1, 5, 10},
			metric:      func(s snapshot) float64 { return float64(s.x.repeats) },
		},
		{
			id: "library_regular", name: "Library Regular",
			description: "Distinct titles from your library",
			category:    domain.CatVariety, color: "slate",
			baseTargets: []float64{5, 15, 30, 60},
			metric:      func(s snapshot) float64 { return float64(s.m.UniqueTitles) },
		},
	}
}

func isMovie(rec domain.WatchRecord, entry domain.MediaEntry) bool {
	return entry.Type == domain.MediaMovie
}

func isSeries(rec domain.WatchRecord, entry domain.MediaEntry) bool {
	return entry.Type == domain.MediaSeries
}

func isBook(rec domain.WatchRecord, entry domain.MediaEntry) bool {
	return entry.Type == domain.MediaBook
}

// inHourRange builds a predicate matching the record's completion hour
// against [from, to).
func inHourRange(from, to int) predicate {
	return func(rec domain.WatchRecord, entry domain.MediaEntry) bool {
		ts := rec.EffectiveTime()
		if ts.IsZero() {
			return false
		}
		return ts.Hour() >= from && ts.Hour() < to
	}
}
