package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"editdesk-cli/internal/format"
	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/logging"
	"editdesk-cli/internal/printers"
	"editdesk-cli/internal/render"
	"editdesk-cli/internal/store"
	"editdesk-cli/internal/tasks"
	"editdesk-cli/internal/tui"
)

type App struct {
	Dir        string
	Server     string
	Storage    string
	LogLevel   string
	PrettyJSON bool
	Format     string

	v   *viper.Viper
	cfg store.Config
	log *log.Logger
	kv  store.KV
}

func NewRootCmd() *cobra.Command {
	app := &App{v: store.NewViper()}

	cmd := &cobra.Command{
		Use:          "editdesk",
		Short:        "Journal back-office desk: TUI + scriptable commands",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive desk
  editdesk

  # Scriptable commands
  editdesk tasks add "send proofs to author"
  editdesk search --type manuscript M2024-0113
  editdesk pagefee list --filter unprocessed --format text

  # Quick-add a task (shortcut for: editdesk tasks add <text>)
  editdesk +call the printer
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI when attached to a terminal.
			if len(args) == 0 && isatty.IsTerminal(os.Stdout.Fd()) {
				return runTUI(cmd, app, "")
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := store.BindFlags(app.v, cmd.Root().PersistentFlags(), "dir", "server", "storage", "log_level"); err != nil {
			return err
		}
		cfg, err := store.LoadConfig(app.v)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("config: %w", err))
		}
		app.cfg = cfg
		app.Dir = cfg.Dir
		app.log = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.kv == nil {
			return nil
		}
		err := app.kv.Close()
		app.kv = nil
		return err
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("EDITDESK_DIR", store.DefaultDir), "Path to the local data dir")
	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("EDITDESK_SERVER", store.DefaultServer), "Back-office server base URL")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("EDITDESK_STORAGE", store.BackendDiskv), "Local storage backend (diskv|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("EDITDESK_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("EDITDESK_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newReviewCmd(app))
	cmd.AddCommand(newPageFeeCmd(app))
	cmd.AddCommand(newScrapeCmd(app))
	cmd.AddCommand(newNotesCmd(app))
	cmd.AddCommand(newChatCmd(app))
	cmd.AddCommand(newOpenFolderCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newUICmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App, page string) error {
	kv, err := openKV(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	client, err := newClient(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(tui.Options{
		Config: app.cfg,
		Store:  store.Store{Dir: app.cfg.Dir},
		KV:     kv,
		Client: client,
		Page:   page,
	})
}

// openKV opens the configured slot store once per invocation; PersistentPostRunE closes it.
func openKV(ctx context.Context, app *App) (store.KV, error) {
	if app.kv != nil {
		return app.kv, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s := store.Store{Dir: app.cfg.Dir}
	kv, err := s.OpenKV(ctx, app.cfg.Storage)
	if err != nil {
		return nil, err
	}
	app.kv = kv
	return kv, nil
}

func loadController(ctx context.Context, app *App) (*tasks.Controller, error) {
	kv, err := openKV(ctx, app)
	if err != nil {
		return nil, err
	}
	return tasks.NewController(store.TaskStore{KV: kv}, nil), nil
}

func newClient(app *App) (*gateway.Client, error) {
	return gateway.New(gateway.Options{
		BaseURL: app.cfg.Server,
		Token:   app.cfg.Token,
		Timeout: app.cfg.Timeout,
		Logger:  app.log,
	})
}

func printer(w io.Writer, app *App) *printers.PrettyPrint {
	pp := printers.New(w)
	if app.cfg.TUI.Glyphs == "ascii" {
		pp.Glyphs = render.ASCIIGlyphs
	}
	return pp
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
