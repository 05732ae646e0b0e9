package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/screenlog/screenlog/internal/app/achievement"
	"github.com/screenlog/screenlog/internal/daemon"
)

func init() {
	achievementsCmd.Flags().StringVar(&achCategory, "category", "", "Only show one category")
	achievementsCmd.Flags().BoolVar(&achUnlockedOnly, "unlocked", false, "Only show achievements with unlocked levels")
	rootCmd.AddCommand(achievementsCmd)
}

var (
	achCategory     string
	achUnlockedOnly bool
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show achievement progress",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
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

	list := achievement.BuildAchievements(history, catalog, time.Now())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tCATEGORY\tLEVEL\tNEXT TARGET\tPROGRESS")
	for _, a := range list {
		if achCategory != "" && string(a.Category) != achCategory {
			continue
		}
		unlocked := a.UnlockedCount()
		if achUnlockedOnly && unlocked == 0 {
			continue
		}

		next := a.NextLevel()
		nextTarget := "done"
		progress := "100%"
		if next != nil {
			nextTarget = fmt.Sprintf("%.0f", next.Target)
			progress = fmt.Sprintf("%.0f%%", next.ProgressPct)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			a.Name, a.Category, unlocked, nextTarget, progress)
	}
	return w.Flush()
}
