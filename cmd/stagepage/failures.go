package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/stagepage"
)

func newFailuresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failures",
		Short: "List recorded image load failures",
		Long: `List the images visitors failed to load, grouped by URL. Each of them was
replaced with its fallback on the page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := stagepage.LoadConfig(path)
			if err != nil {
				return err
			}
			recent, _ := cmd.Flags().GetInt("recent")
			prune, _ := cmd.Flags().GetDuration("prune")
			return runFailures(cmd.OutOrStdout(), cfg.FailureLogPath, recent, prune)
		},
	}
	cmd.Flags().String("config", "stagepage.yaml", "config file path")
	cmd.Flags().Int("recent", 0, "list the latest N failures instead of the summary")
	cmd.Flags().Duration("prune", 0, "delete failures older than this before listing")
	return cmd
}

func runFailures(out io.Writer, dbPath string, recent int, prune time.Duration) error {
	// Opening creates the database, which would hide a mistyped path.
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no failure log at %s (check failure_log in the config)", dbPath)
	} else if err != nil {
		return err
	}

	store, err := stagepage.OpenFailureLog(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if prune > 0 {
		n, err := store.Prune(time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pruned %d failures\n", n)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if recent > 0 {
		failures, err := store.Recent(recent)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "TIME\tSLOT\tPRIMARY\tCLIENT")
		for _, f := range failures {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.At.Format(time.RFC3339), f.Slot, f.Primary, f.Client)
		}
		return nil
	}

	summary, err := store.Summary()
	if err != nil {
		return err
	}
	if len(summary) == 0 {
		fmt.Fprintln(w, "no failures recorded")
		return nil
	}
	fmt.Fprintln(w, "COUNT\tSLOT\tPRIMARY\tLAST SEEN")
	for _, s := range summary {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Count, s.Slot, s.Primary, s.LastSeen.Format(time.RFC3339))
	}
	return nil
}
