package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/screenlog/screenlog/internal/daemon"
	"github.com/screenlog/screenlog/internal/domain"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a library export",
	Long: `Import reads a JSON export containing media entries and watch
history and loads it into the local library. Entries with an existing
id are overwritten; history records are always appended.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// importFile is the on-disk export format.
type importFile struct {
	Media   []domain.MediaEntry  `json:"media"`
	History []domain.WatchRecord `json:"history"`
}

func runImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}

	var in importFile
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("parse import file: %w", err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	for _, m := range in.Media {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.Title == "" {
			return fmt.Errorf("media entry %s has no title", m.ID)
		}
		if err := d.DB.PutMedia(m); err != nil {
			return fmt.Errorf("import media %s: %w", m.ID, err)
		}
	}

	known, err := d.DB.MediaMap()
	if err != nil {
		return err
	}

	skipped := 0
	for _, rec := range in.History {
		if _, ok := known[rec.MediaID]; !ok {
			skipped++
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.Status == "" {
			rec.Status = domain.StatusCompleted
		}
		if err := d.DB.InsertWatch(rec); err != nil {
			return fmt.Errorf("import watch %s: %w", rec.ID, err)
		}
	}

	fmt.Printf("Imported %d media entries and %d watch records.\n",
		len(in.Media), len(in.History)-skipped)
	if skipped > 0 {
		fmt.Printf("Skipped %d records referencing unknown media.\n", skipped)
	}
	return nil
}
