package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/screenlog/screenlog/internal/domain"
)

// ─── Watch History ──────────────────────────────────────────────────────────

// InsertWatch stores a new watch record.
func (d *DB) InsertWatch(w domain.WatchRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO watch_history (id, media_id, status, season, episode,
			rating, audio_format, video_format, device, viewers,
			completed_at, watched_at, created_at, elapsed_seconds, scheduled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.MediaID, string(w.Status), w.Season, w.Episode,
		w.Rating, w.AudioFormat, w.VideoFormat, w.Device, jsonCol(w.Viewers),
		unixOrNull(w.CompletedAt), unixOrNull(w.WatchedAt),
		unixOrNull(w.CreatedAt), w.ElapsedSeconds, unixOrNull(w.ScheduledAt),
	)
	return err
}

// UpdateWatchStatus moves a record through its lifecycle. Marking a
// record completed stamps completed_at.
func (d *DB) UpdateWatchStatus(id string, status domain.WatchStatus, completedAtUnix int64) error {
	var result sql.Result
	var err error
	if status == domain.StatusCompleted {
		result, err = d.db.Exec(
			`UPDATE watch_history SET status = ?, completed_at = ? WHERE id = ?`,
			string(status), completedAtUnix, id)
	} else {
		result, err = d.db.Exec(
			`UPDATE watch_history SET status = ? WHERE id = ?`, string(status), id)
	}
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("watch record %q: %w", id, domain.ErrWatchNotFound)
	}
	return nil
}

// ListHistory returns every watch record, oldest effective time first.
// This is the full snapshot the achievement engine folds over.
func (d *DB) ListHistory() ([]domain.WatchRecord, error) {
	rows, err := d.db.Query(historySelect +
		` ORDER BY COALESCE(completed_at, watched_at, created_at) ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWatches(rows)
}

// ListHistoryForMedia returns the records referencing one media entry.
func (d *DB) ListHistoryForMedia(mediaID string) ([]domain.WatchRecord, error) {
	rows, err := d.db.Query(historySelect+
		` WHERE media_id = ? ORDER BY COALESCE(completed_at, watched_at, created_at) ASC`,
		mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWatches(rows)
}

// HistoryCount returns the total number of watch records.
func (d *DB) HistoryCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM watch_history`).Scan(&count)
	return count, err
}

// DanglingHistoryCount counts records whose media entry no longer exists.
// The engine tolerates these; the health checker reports them.
func (d *DB) DanglingHistoryCount() (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM watch_history w
		 LEFT JOIN media m ON m.id = w.media_id
		 WHERE m.id IS NULL`).Scan(&count)
	return count, err
}

// DeleteWatch removes a watch record.
func (d *DB) DeleteWatch(id string) error {
	result, err := d.db.Exec(`DELETE FROM watch_history WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("watch record %q: %w", id, domain.ErrWatchNotFound)
	}
	return nil
}

const historySelect = `SELECT id, media_id, status, season, episode,
	rating, audio_format, video_format, device, viewers,
	completed_at, watched_at, created_at, elapsed_seconds, scheduled_at
	FROM watch_history`

func collectWatches(rows *sql.Rows) ([]domain.WatchRecord, error) {
	var records []domain.WatchRecord
	for rows.Next() {
		var w domain.WatchRecord
		var status, viewers string
		var completedAt, watchedAt, createdAt, scheduledAt sql.NullInt64

		err := rows.Scan(&w.ID, &w.MediaID, &status, &w.Season, &w.Episode,
			&w.Rating, &w.AudioFormat, &w.VideoFormat, &w.Device, &viewers,
			&completedAt, &watchedAt, &createdAt, &w.ElapsedSeconds, &scheduledAt)
		if err != nil {
			return nil, err
		}

		w.Status = domain.WatchStatus(status)
		fromJSONCol(viewers, &w.Viewers)
		w.CompletedAt = timeFromUnix(completedAt)
		w.WatchedAt = timeFromUnix(watchedAt)
		w.CreatedAt = timeFromUnix(createdAt)
		w.ScheduledAt = timeFromUnix(scheduledAt)
		records = append(records, w)
	}
	return records, rows.Err()
}
