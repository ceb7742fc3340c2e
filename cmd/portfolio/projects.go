package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect the project table",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.load()
			if err != nil {
				return err
			}
			projects, err := services.NewProjectService(cfg.Projects).FilterByCategory(category)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSLUG\tCATEGORY\tIMAGES\tTITLE")
			for i := range projects {
				p := &projects[i]
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.Slug, p.Category, len(p.AllImages()), p.Title)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&category, "category", string(models.CategoryAll), "Category filter ("+categoryList()+")")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print one project as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.load()
			if err != nil {
				return err
			}
			project, err := services.NewProjectService(cfg.Projects).FindBySlug(args[0])
			if err != nil {
				return fmt.Errorf("project %q not found", args[0])
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(project)
		},
	}
	return cmd
}

func categoryList() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, "|")
}
