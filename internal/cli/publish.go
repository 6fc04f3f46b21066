package cli

import (
	"io"

	"github.com/spf13/cobra"

	"editdesk-cli/internal/format"
	"editdesk-cli/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to        string
		pending   bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the local tasks and notes as markdown files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := loadController(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := newSyncer(cmd, app, true)
			if err != nil {
				return writeErr(cmd, err)
			}

			res, err := publish.WriteDesk(to, ctrl.List(), s.All(), publish.WriteOptions{
				PendingOnly: pending,
				Overwrite:   overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: res,
				Meta: map[string]any{"to": to},
				Text: func(w io.Writer) error {
					pp := printer(w, app)
					pp.TitleWithCount("Written", len(res.Written))
					for _, p := range res.Written {
						pp.Message(p)
					}
					return nil
				},
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&pending, "pending", false, "Leave completed tasks out")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
