package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/eringen/stagepage/content"
	"github.com/eringen/stagepage/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	ProjectName   string
	ArtistName    string
	Theme         string
	SessionSecret string
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a new site directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, _ := cmd.Flags().GetString("theme")
			artist, _ := cmd.Flags().GetString("artist")
			return runNew(cmd.OutOrStdout(), args[0], artist, theme)
		},
	}
	cmd.Flags().String("theme", content.ThemeClassic, "classic or noir")
	cmd.Flags().String("artist", "", "artist name (defaults to the directory name)")
	return cmd
}

func runNew(out io.Writer, dir, artist, theme string) error {
	if _, ok := content.LookupTheme(theme); !ok {
		return fmt.Errorf("unknown theme %q", theme)
	}

	// Check if directory already exists.
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("directory %q already exists", dir)
	}

	secret, err := randomSecret()
	if err != nil {
		return err
	}
	name := filepath.Base(dir)
	if artist == "" {
		artist = strings.ToUpper(name)
	}
	data := scaffoldData{
		ProjectName:   name,
		ArtistName:    artist,
		Theme:         theme,
		SessionSecret: secret,
	}

	fmt.Fprintf(out, "Creating new stagepage site: %s\n\n", dir)

	root := "templates"

	err = fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Compute the relative path from the template root.
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Compute the output path, stripping the .tmpl suffix.
		outPath := filepath.Join(dir, relPath)
		outPath = strings.TrimSuffix(outPath, ".tmpl")

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		raw, err := scaffold.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		// Parse and execute as a Go text/template.
		tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}

		fmt.Fprintf(out, "  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  # copy hero.jpeg, bio.jpeg and gallery images into assets/")
	fmt.Fprintln(out, "  stagepage content check content.yaml")
	fmt.Fprintln(out, "  stagepage serve")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Set cookie_secure: true in stagepage.yaml when serving over HTTPS.")
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
