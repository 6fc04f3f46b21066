package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"editdesk-cli/internal/chat"
	"editdesk-cli/internal/format"
	"editdesk-cli/internal/store"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Ask the assistant; the exchange is appended to the local chat log",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := strings.TrimSpace(strings.Join(args, " "))
			if msg == "" {
				return cmd.Help()
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: app.cfg.Dir}
			session := chat.NewSession(client, s, app.log)
			if _, ok := session.Begin(msg); !ok {
				return cmd.Help()
			}
			reply := session.Exchange(cmd.Context(), msg)
			if err := writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"role": string(reply.Role), "content": reply.Text},
				Text: func(w io.Writer) error {
					printer(w, app).Bubble(reply.Role, reply.Text)
					return nil
				},
			}); err != nil {
				return err
			}
			if reply.Role == chat.RoleError {
				// Exit non-zero; the error bubble was already written.
				cmd.SilenceErrors = true
				return errChatFailed
			}
			return nil
		},
	}
	cmd.AddCommand(newChatHistoryCmd(app))
	return cmd
}

var errChatFailed = errors.New("chat request failed")

func newChatHistoryCmd(app *App) *cobra.Command {
	var htmlOut string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the local chat log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl := store.Store{Dir: app.cfg.Dir}.LoadChatLog()
			if htmlOut != "" {
				var buf bytes.Buffer
				if err := chat.WriteHTML(&buf, cl.Messages); err != nil {
					return writeErr(cmd, err)
				}
				if htmlOut == "-" {
					_, err := cmd.OutOrStdout().Write(buf.Bytes())
					return err
				}
				if err := os.WriteFile(htmlOut, buf.Bytes(), 0o644); err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, format.Envelope{
					Data: map[string]any{"file": htmlOut, "messages": len(cl.Messages)},
					Text: func(w io.Writer) error {
						printer(w, app).Message("wrote " + htmlOut)
						return nil
					},
				})
			}
			return writeOut(cmd, app, format.Envelope{
				Data: cl.Messages,
				Meta: map[string]any{"count": len(cl.Messages)},
				Text: func(w io.Writer) error {
					printer(w, app).ChatLog(cl)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&htmlOut, "html", "", "Export the log as HTML to this file (- for stdout)")
	return cmd
}
