package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/screenlog/screenlog/internal/app/achievement"
	"github.com/screenlog/screenlog/internal/domain"
	"github.com/screenlog/screenlog/internal/infra/metrics"
)

// loadSnapshot fetches the history and catalog the engine folds over.
func (s *Server) loadSnapshot() ([]domain.WatchRecord, map[string]domain.MediaEntry, error) {
	history, err := s.db.ListHistory()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := s.db.MediaMap()
	if err != nil {
		return nil, nil, err
	}
	return history, catalog, nil
}

// --- /api/achievements ---

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	history, catalog, err := s.loadSnapshot()
	if err != nil {
		countRequest("achievements", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	start := time.Now()
	list := achievement.BuildAchievements(history, catalog, s.now())
	metrics.EngineBuilds.Inc()
	metrics.EngineBuildLatency.Observe(time.Since(start).Seconds())

	unlocked := 0
	for _, a := range list {
		unlocked += a.UnlockedCount()
	}
	metrics.AchievementsUnlocked.Set(float64(unlocked))
	metrics.HistoryRecords.Set(float64(len(history)))
	metrics.LibraryEntries.Set(float64(len(catalog)))

	// The builder returns declaration order; filtering is a view
	// concern and happens here.
	if cat := r.URL.Query().Get("category"); cat != "" {
		filtered := list[:0]
		for _, a := range list {
			if string(a.Category) == cat {
				filtered = append(filtered, a)
			}
		}
		list = filtered
	}

	countRequest("achievements", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": list,
		"unlocked":     unlocked,
	})
}

// --- /api/achievements/{id}/contributions ---

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	history, catalog, err := s.loadSnapshot()
	if err != nil {
		countRequest("contributions", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := achievement.ResolveContributions(id, history, catalog)
	countRequest("contributions", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievement_id": id,
		"contributions":  out,
	})
}

// --- /api/stats ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	history, catalog, err := s.loadSnapshot()
	if err != nil {
		countRequest("stats", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	m := achievement.ExtractMetrics(history, catalog, s.now())
	countRequest("stats", http.StatusOK)
	writeJSON(w, http.StatusOK, m)
}

// --- /api/streak ---

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	history, catalog, err := s.loadSnapshot()
	if err != nil {
		countRequest("streak", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	m := achievement.ExtractMetrics(history, catalog, s.now())
	countRequest("streak", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current_streak": m.CurrentStreak,
		"max_per_day":    m.MaxPerDay,
	})
}

// --- /api/media ---

func (s *Server) handleListMedia(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.ListMedia()
	if err != nil {
		countRequest("media", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	countRequest("media", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]interface{}{"media": entries})
}

func (s *Server) handlePutMedia(w http.ResponseWriter, r *http.Request) {
	var entry domain.MediaEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		countRequest("media", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entry.Title == "" {
		countRequest("media", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	switch entry.Type {
	case domain.MediaMovie, domain.MediaSeries, domain.MediaBook:
	default:
		countRequest("media", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, domain.ErrInvalidMediaType.Error())
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = s.now()
	}

	if err := s.db.PutMedia(entry); err != nil {
		countRequest("media", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	countRequest("media", http.StatusCreated)
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.db.DeleteMedia(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMediaNotFound) {
			status = http.StatusNotFound
		}
		countRequest("media", status)
		writeError(w, status, err.Error())
		return
	}
	countRequest("media", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// --- /api/history ---

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.db.ListHistory()
	if err != nil {
		countRequest("history", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	countRequest("history", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (s *Server) handleLogWatch(w http.ResponseWriter, r *http.Request) {
	var rec domain.WatchRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		countRequest("history", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rec.MediaID == "" {
		countRequest("history", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, "media_id is required")
		return
	}

	entry, err := s.db.GetMedia(rec.MediaID)
	if err != nil {
		countRequest("history", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		countRequest("history", http.StatusNotFound)
		writeError(w, http.StatusNotFound, "media entry not found")
		return
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = domain.StatusCompleted
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	if rec.Status == domain.StatusCompleted && rec.CompletedAt.IsZero() {
		rec.CompletedAt = s.now()
	}

	if err := s.db.InsertWatch(rec); err != nil {
		countRequest("history", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metrics.WatchesLogged.WithLabelValues(string(entry.Type)).Inc()
	countRequest("history", http.StatusCreated)
	writeJSON(w, http.StatusCreated, rec)
}

func countRequest(route string, status int) {
	metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status/100)+"xx").Inc()
}
