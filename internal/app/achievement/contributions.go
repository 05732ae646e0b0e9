package achievement

import (
	"fmt"

	"github.com/screenlog/screenlog/internal/domain"
)

// maxContributions caps the drill-down output. A display bound, not a
// correctness bound — truncation is silent.
const maxContributions = 50

// ResolveContributions re-filters the raw history down to the records
// that drove one achievement's progress, for the detail drill-down.
//
// The predicate comes from the same definition table the builder uses,
// so the two cannot drift. Unknown ids — including the dynamic genre
// achievements — fall through to the default "every completed record"
// predicate.
func ResolveContributions(achievementID string, history []domain.WatchRecord, catalog map[string]domain.MediaEntry) []domain.Contribution {
	match := predicateFor(achievementID)

	var out []domain.Contribution
	for _, rec := range history {
		entry, ok := catalog[rec.MediaID]
		if !ok || !rec.IsCompleted() {
			continue
		}
		if !match(rec, entry) {
			continue
		}
		out = append(out, renderContribution(rec, entry))
		if len(out) == maxContributions {
			break
		}
	}
	return out
}

// predicateFor looks up the achievement's match predicate, defaulting
// to match-all for nil predicates and unknown ids.
func predicateFor(achievementID string) predicate {
	for _, def := range fixedDefinitions() {
		if def.id == achievementID {
			if def.match != nil {
				return def.match
			}
			break
		}
	}
	return func(domain.WatchRecord, domain.MediaEntry) bool { return true }
}

// renderContribution builds the display tuple for one record. Subtitle
// is context-dependent: episode position for series, page range for
// books, format or viewer count when present, else the completion date.
func renderContribution(rec domain.WatchRecord, entry domain.MediaEntry) domain.Contribution {
	c := domain.Contribution{
		Title:     entry.Title,
		PosterURL: entry.PosterURL,
		Value:     entry.Platform,
		Status:    "Completed",
	}

	switch {
	case entry.Type == domain.MediaSeries && rec.Season > 0:
		c.Subtitle = fmt.Sprintf("S%dE%d", rec.Season, rec.Episode)
	case entry.Type == domain.MediaBook && entry.TotalPages > 0:
		c.Subtitle = fmt.Sprintf("%d / %d pages", entry.PagesRead, entry.TotalPages)
	case rec.AudioFormat != "":
		c.Subtitle = rec.AudioFormat
	case rec.VideoFormat != "":
		c.Subtitle = rec.VideoFormat
	case rec.IsShared():
		c.Subtitle = fmt.Sprintf("with %d viewers", len(rec.Viewers))
	default:
		if ts := rec.EffectiveTime(); !ts.IsZero() {
			c.Subtitle = ts.Format("2006-01-02")
		}
	}

	return c
}
