package sqlite_test

import (
	"testing"
	"time"

	"github.com/screenlog/screenlog/internal/domain"
	"github.com/screenlog/screenlog/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMedia_PutGetRoundtrip(t *testing.T) {
	db := testDB(t)

	entry := domain.MediaEntry{
		ID: "s1", Title: "Severance", Type: domain.MediaSeries,
		RuntimeMinutes:    50,
		SeasonsCount:      2,
		EpisodesPerSeason: []int{9, 10},
		EpisodeRuntimes:   [][]int{{55, 50, 48}, {60}},
		Genres:            []string{"Drama", "Sci-Fi"},
		Platform:          "Apple TV+",
		Language:          "English",
		Actors:            []string{"Adam Scott", "Britt Lower"},
		Rating:            4.5,
		PosterURL:         "https://example.com/severance.jpg",
		AddedAt:           time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := db.PutMedia(entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := db.GetMedia("s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected entry, got nil")
	}
	if got.Title != "Severance" || got.Type != domain.MediaSeries {
		t.Errorf("identity mismatch: %+v", got)
	}
	if len(got.EpisodesPerSeason) != 2 || got.EpisodesPerSeason[1] != 10 {
		t.Errorf("episodes per season not preserved: %v", got.EpisodesPerSeason)
	}
	if got.EpisodeRuntime(1, 2) != 50 {
		t.Errorf("episode runtime table not preserved: %v", got.EpisodeRuntimes)
	}
	if len(got.Genres) != 2 || got.Genres[0] != "Drama" {
		t.Errorf("genres not preserved: %v", got.Genres)
	}
	if got.Rating != 4.5 {
		t.Errorf("rating expected 4.5, got %v", got.Rating)
	}
}

func TestMedia_GetMissing(t *testing.T) {
	db := testDB(t)
	got, err := db.GetMedia("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}
}

func TestMedia_PutIsUpsert(t *testing.T) {
	db := testDB(t)
	entry := domain.MediaEntry{ID: "m1", Title: "Old", Type: domain.MediaMovie}
	_ = db.PutMedia(entry)
	entry.Title = "New"
	if err := db.PutMedia(entry); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _ := db.GetMedia("m1")
	if got.Title != "New" {
		t.Errorf("expected upsert to win, got %q", got.Title)
	}
	count, _ := db.MediaCount()
	if count != 1 {
		t.Errorf("expected 1 entry after upsert, got %d", count)
	}
}

func TestMedia_MapAndDelete(t *testing.T) {
	db := testDB(t)
	_ = db.PutMedia(domain.MediaEntry{ID: "a", Title: "A", Type: domain.MediaMovie})
	_ = db.PutMedia(domain.MediaEntry{ID: "b", Title: "B", Type: domain.MediaBook})

	m, err := db.MediaMap()
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if len(m) != 2 || m["b"].Type != domain.MediaBook {
		t.Errorf("unexpected map: %+v", m)
	}

	if err := db.DeleteMedia("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.DeleteMedia("a"); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestHistory_InsertListRoundtrip(t *testing.T) {
	db := testDB(t)

	completed := time.Date(2026, 2, 1, 21, 30, 0, 0, time.UTC)
	rec := domain.WatchRecord{
		ID: "w1", MediaID: "s1", Status: domain.StatusCompleted,
		Season: 1, Episode: 3, Rating: 5,
		AudioFormat: "Dolby Atmos", VideoFormat: "4K UHD",
		Device:      "Living Room TV",
		Viewers:     []string{"sam", "alex"},
		CompletedAt: completed,
		ScheduledAt: completed.Add(-3 * time.Hour),
	}
	if err := db.InsertWatch(rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	list, err := db.ListHistory()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}
	got := list[0]
	if got.Season != 1 || got.Episode != 3 || got.Rating != 5 {
		t.Errorf("fields not preserved: %+v", got)
	}
	if !got.CompletedAt.Equal(completed) {
		t.Errorf("completed_at expected %v, got %v", completed, got.CompletedAt)
	}
	if len(got.Viewers) != 2 || got.Viewers[0] != "sam" {
		t.Errorf("viewers not preserved: %v", got.Viewers)
	}
	if !got.WatchedAt.IsZero() || !got.CreatedAt.IsZero() {
		t.Errorf("unset times should stay zero: %+v", got)
	}
}

func TestHistory_OrderByEffectiveTime(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	_ = db.InsertWatch(domain.WatchRecord{
		ID: "late", MediaID: "m1", Status: domain.StatusCompleted,
		CompletedAt: base.Add(2 * time.Hour)})
	_ = db.InsertWatch(domain.WatchRecord{
		ID: "early", MediaID: "m1", Status: domain.StatusCompleted,
		WatchedAt: base}) // no completed_at — falls back in the ordering

	list, _ := db.ListHistory()
	if len(list) != 2 || list[0].ID != "early" {
		t.Errorf("expected effective-time ordering, got %+v", list)
	}
}

func TestHistory_UpdateStatus(t *testing.T) {
	db := testDB(t)
	_ = db.InsertWatch(domain.WatchRecord{
		ID: "w1", MediaID: "m1", Status: domain.StatusInProgress})

	at := time.Date(2026, 2, 2, 20, 0, 0, 0, time.UTC)
	if err := db.UpdateWatchStatus("w1", domain.StatusCompleted, at.Unix()); err != nil {
		t.Fatalf("update: %v", err)
	}
	list, _ := db.ListHistory()
	if list[0].Status != domain.StatusCompleted || !list[0].CompletedAt.Equal(at) {
		t.Errorf("status update not applied: %+v", list[0])
	}

	if err := db.UpdateWatchStatus("missing", domain.StatusPaused, 0); err == nil {
		t.Error("expected error for unknown record")
	}
}

func TestHistory_DanglingCount(t *testing.T) {
	db := testDB(t)
	_ = db.PutMedia(domain.MediaEntry{ID: "m1", Title: "M", Type: domain.MediaMovie})
	_ = db.InsertWatch(domain.WatchRecord{ID: "ok", MediaID: "m1", Status: domain.StatusCompleted})
	_ = db.InsertWatch(domain.WatchRecord{ID: "ghost", MediaID: "gone", Status: domain.StatusCompleted})

	n, err := db.DanglingHistoryCount()
	if err != nil {
		t.Fatalf("dangling: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 dangling record, got %d", n)
	}
}
