package cli

import (
	"io"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"editdesk-cli/internal/format"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			file := app.v.ConfigFileUsed()
			return writeOut(cmd, app, format.Envelope{
				Data: cfg,
				Meta: map[string]any{"configFile": file, "tokenSet": cfg.Token != ""},
				Text: func(w io.Writer) error {
					tbl := uitable.New()
					tbl.AddRow("server:", cfg.Server)
					tbl.AddRow("dir:", cfg.Dir)
					tbl.AddRow("storage:", cfg.Storage)
					tbl.AddRow("default page:", cfg.DefaultPage)
					tbl.AddRow("notes debounce:", cfg.NotesDebounce)
					tbl.AddRow("timeout:", cfg.Timeout)
					tbl.AddRow("log level:", cfg.LogLevel)
					tbl.AddRow("token:", cfg.Token != "")
					tbl.AddRow("config file:", file)
					printer(w, app).Message(tbl.String())
					return nil
				},
			})
		},
	}
}
