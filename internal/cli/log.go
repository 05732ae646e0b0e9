package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/screenlog/screenlog/internal/daemon"
	"github.com/screenlog/screenlog/internal/domain"
)

func init() {
	logCmd.Flags().IntVar(&logSeason, "season", 0, "Season number (series)")
	logCmd.Flags().IntVar(&logEpisode, "episode", 0, "Episode number (series)")
	logCmd.Flags().Float64Var(&logRating, "rating", 0, "Rating 1-5")
	logCmd.Flags().StringVar(&logAudio, "audio", "", "Audio format (e.g. \"Dolby Atmos\")")
	logCmd.Flags().StringVar(&logVideo, "video", "", "Video format (e.g. \"4K UHD\")")
	logCmd.Flags().StringVar(&logDevice, "device", "", "Viewing device")
	logCmd.Flags().StringVar(&logWith, "with", "", "Comma-separated co-viewers")
	rootCmd.AddCommand(logCmd)
}

var (
	logSeason  int
	logEpisode int
	logRating  float64
	logAudio   string
	logVideo   string
	logDevice  string
	logWith    string
)

var logCmd = &cobra.Command{
	Use:   "log <media-id>",
	Short: "Log a completed watch or read",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.DB.GetMedia(args[0])
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("media %q not found — add it with 'screenlog media add'", args[0])
	}

	rec := domain.WatchRecord{
		ID:          uuid.NewString(),
		MediaID:     entry.ID,
		Status:      domain.StatusCompleted,
		Season:      logSeason,
		Episode:     logEpisode,
		Rating:      logRating,
		AudioFormat: logAudio,
		VideoFormat: logVideo,
		Device:      logDevice,
		CompletedAt: time.Now(),
	}
	if logWith != "" {
		for _, v := range strings.Split(logWith, ",") {
			if v = strings.TrimSpace(v); v != "" {
				rec.Viewers = append(rec.Viewers, v)
			}
		}
	}

	if err := d.DB.InsertWatch(rec); err != nil {
		return err
	}

	if entry.Type == domain.MediaSeries && logSeason > 0 {
		fmt.Printf("Logged %s S%dE%d\n", entry.Title, logSeason, logEpisode)
	} else {
		fmt.Printf("Logged %s\n", entry.Title)
	}
	return nil
}
