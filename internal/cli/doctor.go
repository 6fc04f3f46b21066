package cli

import (
	"fmt"
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"editdesk-cli/internal/format"
	"editdesk-cli/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the local data dir for unreadable or corrupt state",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := store.Store{Dir: app.cfg.Dir}.Doctor(cmd.Context(), app.cfg.Storage)

			if err := writeOut(cmd, app, format.Envelope{
				Data: report,
				Meta: map[string]any{
					"issues":    len(report.Issues),
					"hasErrors": report.HasErrors(),
				},
				Hints: []string{"editdesk config"},
				Text: func(w io.Writer) error {
					pp := printer(w, app)
					if len(report.Issues) == 0 {
						pp.Message(fmt.Sprintf("%s: ok (%d tasks)", report.Dir, report.Tasks))
						return nil
					}
					tbl := uitable.New()
					tbl.AddRow("LEVEL", "CODE", "MESSAGE")
					for _, it := range report.Issues {
						tbl.AddRow(it.Level, it.Code, it.Message)
					}
					pp.Message(tbl.String())
					return nil
				},
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
