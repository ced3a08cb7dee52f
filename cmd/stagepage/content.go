package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/stagepage/content"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect site content",
	}
	check := &cobra.Command{
		Use:   "check <file>",
		Short: "Load and validate a content file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assets, _ := cmd.Flags().GetString("assets")
			return runContentCheck(cmd.OutOrStdout(), args[0], assets)
		},
	}
	check.Flags().String("assets", "assets", "assets directory to look for local images in")
	cmd.AddCommand(check)
	return cmd
}

// runContentCheck prints a summary of the content file. Missing local images
// are reported but are not an error: the page falls back to the remote
// substitutes.
func runContentCheck(out io.Writer, path, assetsDir string) error {
	c, err := content.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n", c.Artist, c.Theme)
	fmt.Fprintf(out, "  gallery:      %d images\n", len(c.Gallery))
	fmt.Fprintf(out, "  venues:       %d\n", len(c.Venues))
	fmt.Fprintf(out, "  shared stage: %d\n", len(c.SharedStage))
	fmt.Fprintf(out, "  fallbacks:    %d gallery\n", len(c.Fallbacks.Gallery))

	var missing []string
	for _, p := range c.LocalImages() {
		rel, ok := strings.CutPrefix(p, "/assets/")
		if !ok {
			continue
		}
		if _, err := os.Stat(filepath.Join(assetsDir, filepath.FromSlash(rel))); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		fmt.Fprintln(out, "  all local images present")
		return nil
	}
	fmt.Fprintf(out, "  %d local images missing (fallbacks will be shown):\n", len(missing))
	for _, p := range missing {
		fmt.Fprintf(out, "    %s\n", p)
	}
	return nil
}
