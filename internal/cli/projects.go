package cli

import (
	"errors"
	"fmt"
	"strconv"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/statusutil"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse the project catalog",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsTagsCmd(app))
	cmd.AddCommand(newProjectsFeaturedCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var (
		query  string
		status string
		tag    string
		page   int
		narrow bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects (filtered, sorted, paginated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := statusutil.ParseFilter(status); err != nil {
				return writeErr(cmd, err)
			}
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			loc := catalog.Location{Path: "/projects"}.
				With(catalog.ParamQuery, query).
				With(catalog.ParamStatus, status).
				With(catalog.ParamTag, tag)
			if page > 0 {
				loc = loc.With(catalog.ParamPage, strconv.Itoa(page))
			}
			vp := catalog.Wide
			if narrow {
				vp = catalog.Narrow
			}
			b := catalog.NewBrowser(cat, loc, vp)
			v := b.View()

			return writeOut(cmd, app, map[string]any{
				"data": v.Page,
				"meta": map[string]any{
					"location": b.Location().String(),
					"viewport": vp.String(),
					"matched":  len(v.Filtered),
				},
			})
		},
	}

	cmd.Flags().StringVar(&query, "q", "", "Search title, summary and client")
	cmd.Flags().StringVar(&status, "status", "", "Status filter (live|in-progress|archived|all)")
	cmd.Flags().StringVar(&tag, "tag", "", "Tag filter (project type)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number (clamped)")
	cmd.Flags().BoolVar(&narrow, "narrow", false, "Use the narrow page size")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := cat.Find(args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newProjectsTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag, sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tags": catalog.Tags(cat.Projects())}})
		},
	}
}

func newProjectsFeaturedCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the featured strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 || limit > catalog.FeaturedCap {
				return writeErr(cmd, fmt.Errorf("--limit must be between 1 and %d", catalog.FeaturedCap))
			}
			cat, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": catalog.Featured(catalog.Sorted(cat.Projects()), limit)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", catalog.FeaturedCap, "Maximum number of projects")
	return cmd
}
