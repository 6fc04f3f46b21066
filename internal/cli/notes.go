package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"editdesk-cli/internal/format"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/notes"
	"editdesk-cli/internal/store"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Expense notes (local copy + server sync)",
	}
	cmd.AddCommand(newNotesListCmd(app))
	cmd.AddCommand(newNotesSetCmd(app))
	cmd.AddCommand(newNotesPullCmd(app))
	return cmd
}

// newSyncer wires the local slot store and, unless offline, the server.
func newSyncer(cmd *cobra.Command, app *App, offline bool) (*notes.Syncer, error) {
	kv, err := openKV(cmd.Context(), app)
	if err != nil {
		return nil, err
	}
	opts := notes.Options{
		Local:    store.NoteStore{KV: kv},
		Debounce: app.cfg.NotesDebounce,
		Logger:   app.log,
	}
	if !offline {
		client, err := newClient(app)
		if err != nil {
			return nil, err
		}
		opts.Remote = client
	}
	return notes.NewSyncer(opts), nil
}

func notesEnvelope(app *App, all map[string]string, meta map[string]any) format.Envelope {
	return format.Envelope{
		Data: all,
		Meta: meta,
		Text: func(w io.Writer) error {
			printer(w, app).Notes(all)
			return nil
		},
	}
}

func newNotesListCmd(app *App) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every note (server value, else local, else placeholder)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSyncer(cmd, app, offline)
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{"source": "local"}
			if !offline {
				if err := s.Load(cmd.Context()); err != nil {
					meta["serverError"] = err.Error()
				} else {
					meta["source"] = "server"
				}
			}
			return writeOut(cmd, app, notesEnvelope(app, s.All(), meta))
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the server and show local copies only")
	return cmd
}

func newNotesSetCmd(app *App) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "set <note-id> <text...|->",
		Short: "Replace a note's text and push all notes to the server",
		Long:  "Replace a note's text. Pass - to read the text from stdin.\n\nNote ids: " + noteIDs(),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.NoteID(strings.TrimSpace(args[0]))
			if _, ok := model.LookupNote(id); !ok {
				return writeErr(cmd, errNotFound("note", args[0]))
			}
			text := strings.Join(args[1:], " ")
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return writeErr(cmd, err)
				}
				text = string(b)
			}
			s, err := newSyncer(cmd, app, offline)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !offline {
				// Other notes must carry their server values into the full-set save.
				if err := s.Load(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := s.Set(id, text); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Flush(cmd.Context()); err != nil {
				return writeErr(cmd, fmt.Errorf("saved locally; server save failed: %w", err))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"id": string(id), "text": text, "synced": !offline},
				Text: func(w io.Writer) error {
					printer(w, app).Message("saved " + string(id))
					return nil
				},
			})
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Only write the local copy")
	return cmd
}

func newNotesPullCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Copy the server notes into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openKV(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			client, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			server, err := client.LoadNotes(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			local := store.NoteStore{KV: kv}
			pulled := make([]string, 0, len(model.Notes))
			for _, n := range model.Notes {
				v, ok := server[string(n.ID)]
				if !ok || v == "" {
					continue
				}
				if err := local.Put(n.ID, v); err != nil {
					return writeErr(cmd, err)
				}
				pulled = append(pulled, string(n.ID))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: map[string]any{"pulled": pulled},
				Text: func(w io.Writer) error {
					printer(w, app).Message(fmt.Sprintf("pulled %d notes", len(pulled)))
					return nil
				},
			})
		},
	}
}

func noteIDs() string {
	ids := make([]string, 0, len(model.Notes))
	for _, n := range model.Notes {
		ids = append(ids, string(n.ID))
	}
	return strings.Join(ids, ", ")
}
