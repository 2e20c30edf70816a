package system

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func NewGenDocsCommand() *cobra.Command {
	var (
		outDir  string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Write Markdown reference pages for the melbooking CLI",
		Long: `Write one Markdown page per melbooking command (http, worker, system ...)
into --outdir. Pages carry a small front-matter block so the operations
handbook can include them directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %q: %w", outDir, err)
			}
			abs, err := filepath.Abs(outDir)
			if err != nil {
				return err
			}

			prepender := func(filename string) string {
				name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
				title := strings.ReplaceAll(name, "_", " ")
				return fmt.Sprintf("---\ntitle: %q\nslug: %s\n---\n\n", title, name)
			}
			linker := func(name string) string {
				if baseURL == "" {
					return name
				}
				return path.Join(baseURL, strings.TrimSuffix(name, ".md"))
			}

			if err := doc.GenMarkdownTreeCustom(cmd.Root(), abs, prepender, linker); err != nil {
				return fmt.Errorf("generate docs: %w", err)
			}
			fmt.Printf("CLI docs written to %s\n", abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "docs/cli", "output directory")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "prefix for cross-page links (default: relative .md links)")

	return cmd
}
