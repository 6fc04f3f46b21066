package cli

import (
	"github.com/spf13/cobra"

	"editdesk-cli/internal/pages"
)

func newUICmd(app *App) *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the interactive desk",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page != "" {
				if _, ok := pages.Lookup(pages.Default, page); !ok {
					return writeErr(cmd, errNotFound("page", page))
				}
			}
			return runTUI(cmd, app, page)
		},
	}
	cmd.Flags().StringVar(&page, "page", "", "Page to open (home|todo|page-fee|scraping|notes|ai-chat)")
	return cmd
}
