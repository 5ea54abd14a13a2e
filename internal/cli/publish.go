package cli

import (
	"errors"
	"strings"

	"broadcast-mode/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var opt publish.WriteOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the catalog as a Markdown press kit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			res, err := publish.WriteCatalog(cat, toDir, opt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"_hints": []string{
					"open " + toDir + "/index.md",
				},
			})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&opt.HTML, "html", false, "Also write an .html page next to each .md")
	cmd.Flags().BoolVar(&opt.IncludeArchived, "include-archived", false, "Include archived projects")
	cmd.Flags().BoolVar(&opt.IncludeBehindTheBuild, "behind-the-build", false, "Include behind-the-build notes")
	cmd.Flags().BoolVar(&opt.Overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}
