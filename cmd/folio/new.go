package main

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/scaffold"
)

// scaffoldData holds the template variables passed to every .tmpl file.
type scaffoldData struct {
	ProjectName string
	SiteName    string
	Owner       string
}

var newOwner string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new site directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd, args[0])
	},
}

func init() {
	newCmd.Flags().StringVar(&newOwner, "owner", "", "person the portfolio is about (defaults to the site name)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, name string) error {
	dirName := filepath.Base(filepath.Clean(name))
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("directory %q already exists", name)
	}

	data := scaffoldData{
		ProjectName: dirName,
		SiteName:    toTitle(dirName),
		Owner:       newOwner,
	}
	if data.Owner == "" {
		data.Owner = data.SiteName
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating new folio site: %s\n\n", dirName)

	if err := writeScaffold(name, data, func(p string) { fmt.Fprintf(out, "  created %s\n", p) }); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  folio serve --site %s\n", name)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Edit data/portfolio-data.json to add your projects and posts.")
	fmt.Fprintln(out, "Set FOLIO_SESSION_SECRET (or session_secret in config.yaml) before serving.")
	return nil
}

// writeScaffold copies the embedded templates into dir. Files ending in
// .tmpl are executed with data and lose the suffix; the rest are copied
// verbatim.
func writeScaffold(dir string, data scaffoldData, created func(string)) error {
	const root = "templates"
	return fs.WalkDir(scaffold.Templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		outPath := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		raw, err := scaffold.Templates.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}

		if !strings.HasSuffix(p, ".tmpl") {
			if err := os.WriteFile(outPath, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			created(outPath)
			return nil
		}

		tmpl, err := template.New(path.Base(p)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", p, err)
		}
		created(outPath)
		return nil
	})
}

// toTitle turns a directory name into a display name, e.g. "jane-doe" ->
// "Jane Doe".
func toTitle(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(s)
}
