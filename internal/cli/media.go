package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/screenlog/screenlog/internal/daemon"
	"github.com/screenlog/screenlog/internal/domain"
)

func init() {
	mediaAddCmd.Flags().StringVar(&mediaType, "type", "movie", "movie, series, or book")
	mediaAddCmd.Flags().IntVar(&mediaRuntime, "runtime", 0, "Runtime in minutes")
	mediaAddCmd.Flags().IntVar(&mediaPages, "pages", 0, "Total pages (books)")
	mediaAddCmd.Flags().StringVar(&mediaGenres, "genres", "", "Comma-separated genres")
	mediaAddCmd.Flags().StringVar(&mediaPlatform, "platform", "", "Platform (e.g. Netflix)")
	mediaAddCmd.Flags().StringVar(&mediaLanguage, "language", "", "Language")

	mediaCmd.AddCommand(mediaAddCmd, mediaListCmd, mediaRmCmd)
	rootCmd.AddCommand(mediaCmd)
}

var (
	mediaType     string
	mediaRuntime  int
	mediaPages    int
	mediaGenres   string
	mediaPlatform string
	mediaLanguage string
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Manage the library catalog",
}

var mediaAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a title to the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaAdd,
}

var mediaListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List library titles",
	RunE:    runMediaList,
}

var mediaRmCmd = &cobra.Command{
	Use:   "rm <media-id>",
	Short: "Remove a title from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaRm,
}

func runMediaAdd(cmd *cobra.Command, args []string) error {
	mt := domain.MediaType(mediaType)
	switch mt {
	case domain.MediaMovie, domain.MediaSeries, domain.MediaBook:
	default:
		return fmt.Errorf("type must be movie, series, or book, got %q", mediaType)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entry := domain.MediaEntry{
		ID:             uuid.NewString(),
		Title:          args[0],
		Type:           mt,
		RuntimeMinutes: mediaRuntime,
		TotalPages:     mediaPages,
		Platform:       mediaPlatform,
		Language:       mediaLanguage,
	}
	if mediaGenres != "" {
		for _, g := range strings.Split(mediaGenres, ",") {
			if g = strings.TrimSpace(g); g != "" {
				entry.Genres = append(entry.Genres, g)
			}
		}
	}

	if err := d.DB.PutMedia(entry); err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\nid: %s\n", entry.Title, entry.Type, entry.ID)
	return nil
}

func runMediaList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	entries, err := d.DB.ListMedia()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Library is empty. Run 'screenlog media add <title>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTYPE\tGENRES\tPLATFORM")
	for _, m := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Title, m.Type, strings.Join(m.Genres, ","), m.Platform)
	}
	return w.Flush()
}

func runMediaRm(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.DB.DeleteMedia(args[0]); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}
