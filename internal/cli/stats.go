package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenlog/screenlog/internal/app/achievement"
	"github.com/screenlog/screenlog/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show watch history statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	history, err := d.DB.ListHistory()
	if err != nil {
		return err
	}
	catalog, err := d.DB.MediaMap()
	if err != nil {
		return err
	}

	m := achievement.ExtractMetrics(history, catalog, time.Now())

	fmt.Printf("Total watch time:   %dh %dm\n", m.TotalMinutes/60, m.TotalMinutes%60)
	fmt.Printf("Completed watches:  %d (%d movies, %d episodes, %d book sessions)\n",
		m.TotalWatches, m.MovieCount, m.EpisodeCount, m.BookCount)
	fmt.Printf("Series followed:    %d\n", m.UniqueSeries)
	fmt.Printf("Books finished:     %d (%d pages)\n", m.UniqueBooks, m.PagesRead)
	fmt.Printf("Current streak:     %d days\n", m.CurrentStreak)
	if m.RatedCount > 0 {
		fmt.Printf("Average rating:     %.1f over %d rated\n", m.AverageRating(), m.RatedCount)
	}

	if len(m.GenreCounts) > 0 {
		fmt.Println("\nTop genres:")
		type kv struct {
			genre string
			count int
		}
		var genres []kv
		for g, n := range m.GenreCounts {
			genres = append(genres, kv{g, n})
		}
		sort.Slice(genres, func(i, j int) bool {
			if genres[i].count != genres[j].count {
				return genres[i].count > genres[j].count
			}
			return genres[i].genre < genres[j].genre
		})
		limit := 5
		if len(genres) < limit {
			limit = len(genres)
		}
		for _, g := range genres[:limit] {
			fmt.Printf("  %-20s %d\n", g.genre, g.count)
		}
	}
	return nil
}
