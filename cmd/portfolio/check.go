package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mlm272/maggiemayer-portfolio/internal/services"
)

func newCheckCmd(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the project table and its media files",
		Long: `Load and validate the project table, then confirm every local image, PDF,
video and animation it references exists under the static root. Each
path is printed with the URL the site will request for it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.load()
			if err != nil {
				return err
			}

			refs, err := services.CheckAssets(cfg.Static.Root, cfg.Projects.Projects)
			if err != nil {
				return fmt.Errorf("failed to check assets: %w", err)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			missing := 0
			for _, ref := range refs {
				status := "ok"
				if !ref.Found {
					status = "MISSING"
					missing++
				} else if !verbose {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", status, ref.Slug, ref.Kind, ref.URL)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "%d projects, %d assets, %d missing\n", len(cfg.Projects.Projects), len(refs), missing)
			if missing > 0 {
				return fmt.Errorf("%d referenced assets are missing under %s", missing, cfg.Static.Root)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also list assets that were found")
	return cmd
}
