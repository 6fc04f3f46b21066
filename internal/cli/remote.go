package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"editdesk-cli/internal/format"
	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/pagefee"
)

func newSearchCmd(app *App) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "search <value...>",
		Short: "Look up employees (by name or number) or manuscripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := gateway.ParseSearchType(typ)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.Search(cmd.Context(), st, strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			kind := "employee"
			if _, ok := res.(gateway.ManuscriptResult); ok {
				kind = "manuscript"
			}
			return writeOut(cmd, app, format.Envelope{
				Data: res,
				Meta: map[string]any{"type": kind},
				Text: func(w io.Writer) error {
					printer(w, app).SearchResult(res)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", string(gateway.SearchEmployee), "Search type (employee|id|manuscript)")
	return cmd
}

func newReviewCmd(app *App) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Build the review-fee sheet for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.ProcessReview(cmd.Context(), month)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: res,
				Meta: map[string]any{"month": month},
				Text: func(w io.Writer) error {
					printer(w, app).Review(res)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", time.Now().Format("2006-01"), "Target month (YYYY-MM)")
	return cmd
}

func newPageFeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pagefee",
		Aliases: []string{"page-fee"},
		Short:   "Page-fee checklist",
	}
	cmd.AddCommand(newPageFeeListCmd(app))
	cmd.AddCommand(newPageFeeSetCmd(app))
	cmd.AddCommand(newPageFeeToggleCmd(app))
	return cmd
}

func newPageFeeListCmd(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List page-fee rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := gateway.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows, err := client.PageFees(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: rows,
				Meta: map[string]any{"count": len(rows), "filter": string(f)},
				Text: func(w io.Writer) error {
					printer(w, app).PageFees(rows, f)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", string(gateway.FilterAll), "Row filter (all|unprocessed)")
	return cmd
}

func newPageFeeSetCmd(app *App) *cobra.Command {
	var status string
	var checked bool
	cmd := &cobra.Command{
		Use:   "set <manuscript>",
		Short: "Set the accepted or invoiced checkbox of a row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			msg, err := client.UpdateStatus(cmd.Context(), args[0], status, checked)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"manuscript": args[0], "status": status, "checked": checked, "message": msg},
				Text: func(w io.Writer) error {
					printer(w, app).Message(msg)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "accepted", "Checkbox to set (accepted|invoiced)")
	cmd.Flags().BoolVar(&checked, "checked", true, "New checkbox value")
	return cmd
}

func newPageFeeToggleCmd(app *App) *cobra.Command {
	var status string
	var filter string
	cmd := &cobra.Command{
		Use:   "toggle <manuscript>",
		Short: "Flip a checkbox based on the row's current server value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := gateway.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			board := pagefee.NewBoard(client)
			if _, err := board.Load(cmd.Context(), f); err != nil {
				return writeErr(cmd, err)
			}
			now, err := board.Toggle(cmd.Context(), args[0], status)
			if errors.Is(err, pagefee.ErrNoRow) {
				return writeErr(cmd, errNotFound("manuscript", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			var row model.PageFeeRow
			for _, r := range board.Rows() {
				if r.Manuscript == args[0] {
					row = r
				}
			}
			return writeOut(cmd, app, format.Envelope{
				Data: row,
				Meta: map[string]any{"checked": now},
				Text: func(w io.Writer) error {
					printer(w, app).PageFees([]model.PageFeeRow{row}, f)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "accepted", "Checkbox to flip (accepted|invoiced)")
	cmd.Flags().StringVar(&filter, "filter", string(gateway.FilterAll), "Row filter used to find the row (all|unprocessed)")
	return cmd
}

func newScrapeCmd(app *App) *cobra.Command {
	now := time.Now()
	var year, issue string
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape one journal issue on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := client.StartScraping(cmd.Context(), year, issue)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: res,
				Text: func(w io.Writer) error {
					printer(w, app).Scrape(res)
					return nil
				},
			})
		},
	}
	cmd.Flags().StringVar(&year, "year", strconv.Itoa(now.Year()), "Issue year")
	cmd.Flags().StringVar(&issue, "issue", strconv.Itoa(int(now.Month())), "Issue number")
	return cmd
}

func newOpenFolderCmd(app *App) *cobra.Command {
	var program bool
	cmd := &cobra.Command{
		Use:   "open-folder",
		Short: "Open the journal folder on the server machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			open := client.OpenFolder
			if program {
				open = client.OpenProgramFolder
			}
			msg, err := open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"message": msg},
				Text: func(w io.Writer) error {
					printer(w, app).Message(msg)
					return nil
				},
			})
		},
	}
	cmd.Flags().BoolVar(&program, "program", false, "Open the automation program folder instead")
	return cmd
}
