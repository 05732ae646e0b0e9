package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/screenlog/screenlog/internal/app/achievement"
	"github.com/screenlog/screenlog/internal/daemon"
)

func init() {
	rootCmd.AddCommand(contributionsCmd)
}

var contributionsCmd = &cobra.Command{
	Use:   "contributions <achievement-id>",
	Short: "List the watches that drove one achievement",
	Args:  cobra.ExactArgs(1),
	RunE:  runContributions,
}

func runContributions(cmd *cobra.Command, args []string) error {
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

	out := achievement.ResolveContributions(args[0], history, catalog)
	if len(out) == 0 {
		fmt.Println("No contributions yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tDETAIL\tPLATFORM\tSTATUS")
	for _, c := range out {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Title, c.Subtitle, c.Value, c.Status)
	}
	return w.Flush()
}
