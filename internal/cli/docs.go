package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"editdesk-cli/internal/docs"
	"editdesk-cli/internal/format"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				return writeOut(cmd, app, format.Envelope{
					Data:  map[string]any{"topics": topics},
					Hints: []string{"editdesk docs keys"},
					Text: func(w io.Writer) error {
						pp := printer(w, app)
						pp.TitleWithCount("Topics", len(topics))
						for _, t := range topics {
							pp.Message(t)
						}
						return nil
					},
				})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `editdesk docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"topic": topic, "markdown": body},
				Text: func(w io.Writer) error {
					printer(w, app).Markdown(body)
					return nil
				},
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
	return cmd
}
