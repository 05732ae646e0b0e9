package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/screenlog/screenlog/internal/domain"
)

// ─── Media Catalog ──────────────────────────────────────────────────────────

// PutMedia inserts or replaces a catalog entry.
func (d *DB) PutMedia(m domain.MediaEntry) error {
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	_, err := d.db.Exec(
		`INSERT INTO media (id, title, type, runtime_minutes, seasons_count,
			episodes_per_season, episode_runtimes, total_pages, pages_read,
			genres, platform, language, actors, rating, poster_url, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, type=excluded.type,
			runtime_minutes=excluded.runtime_minutes,
			seasons_count=excluded.seasons_count,
			episodes_per_season=excluded.episodes_per_season,
			episode_runtimes=excluded.episode_runtimes,
			total_pages=excluded.total_pages, pages_read=excluded.pages_read,
			genres=excluded.genres, platform=excluded.platform,
			language=excluded.language, actors=excluded.actors,
			rating=excluded.rating, poster_url=excluded.poster_url`,
		m.ID, m.Title, string(m.Type), m.RuntimeMinutes, m.SeasonsCount,
		jsonCol(m.EpisodesPerSeason), jsonCol(m.EpisodeRuntimes),
		m.TotalPages, m.PagesRead,
		jsonCol(m.Genres), m.Platform, m.Language, jsonCol(m.Actors),
		m.Rating, m.PosterURL, m.AddedAt.Unix(),
	)
	return err
}

// GetMedia retrieves one catalog entry. Returns nil if not found.
func (d *DB) GetMedia(id string) (*domain.MediaEntry, error) {
	row := d.db.QueryRow(mediaSelect+` WHERE id = ?`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMedia returns all catalog entries, oldest first.
func (d *DB) ListMedia() ([]domain.MediaEntry, error) {
	rows, err := d.db.Query(mediaSelect + ` ORDER BY added_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.MediaEntry
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	return entries, rows.Err()
}

// MediaMap returns the catalog keyed by id — the shape the achievement
// engine consumes.
func (d *DB) MediaMap() (map[string]domain.MediaEntry, error) {
	entries, err := d.ListMedia()
	if err != nil {
		return nil, err
	}
	m := make(map[string]domain.MediaEntry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m, nil
}

// DeleteMedia removes a catalog entry. History records referencing it
// become dangling and are silently ignored by the engine.
func (d *DB) DeleteMedia(id string) error {
	result, err := d.db.Exec(`DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("media %q: %w", id, domain.ErrMediaNotFound)
	}
	return nil
}

// MediaCount returns the number of catalog entries.
func (d *DB) MediaCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM media`).Scan(&count)
	return count, err
}

const mediaSelect = `SELECT id, title, type, runtime_minutes, seasons_count,
	episodes_per_season, episode_runtimes, total_pages, pages_read,
	genres, platform, language, actors, rating, poster_url, added_at
	FROM media`

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMedia(s scanner) (*domain.MediaEntry, error) {
	var m domain.MediaEntry
	var mediaType, episodesPerSeason, episodeRuntimes, genres, actors string
	var addedAt int64

	err := s.Scan(&m.ID, &m.Title, &mediaType, &m.RuntimeMinutes,
		&m.SeasonsCount, &episodesPerSeason, &episodeRuntimes,
		&m.TotalPages, &m.PagesRead, &genres, &m.Platform, &m.Language,
		&actors, &m.Rating, &m.PosterURL, &addedAt)
	if err != nil {
		return nil, err
	}

	m.Type = domain.MediaType(mediaType)
	fromJSONCol(episodesPerSeason, &m.EpisodesPerSeason)
	fromJSONCol(episodeRuntimes, &m.EpisodeRuntimes)
	fromJSONCol(genres, &m.Genres)
	fromJSONCol(actors, &m.Actors)
	m.AddedAt = time.Unix(addedAt, 0).UTC()
	return &m, nil
}
