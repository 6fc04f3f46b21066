// Package notes keeps the expense notes in sync: every edit is written to the local
// store at once, and the full set is pushed to the server after a quiet period.
package notes

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"editdesk-cli/internal/model"
)

var ErrUnknownNote = errors.New("unknown note")

// Local is the per-keystroke note persistence.
type Local interface {
	Get(id model.NoteID) (string, bool)
	Put(id model.NoteID, text string) error
}

// Remote is the server side of the notes.
type Remote interface {
	LoadNotes(ctx context.Context) (map[string]string, error)
	SaveNotes(ctx context.Context, notes map[string]string) (string, error)
}

type Options struct {
	Local    Local
	Remote   Remote
	Debounce time.Duration
	Logger   *log.Logger
	// OnSaved is called after each remote save attempt with its error (nil on success).
	OnSaved func(error)
}

type Syncer struct {
	local    Local
	remote   Remote
	debounce time.Duration
	log      *log.Logger
	onSaved  func(error)

	mu      sync.Mutex
	text    map[model.NoteID]string
	timer   *time.Timer
	pending bool
	running bool
}

func NewSyncer(opts Options) *Syncer {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Syncer{
		local:    opts.Local,
		remote:   opts.Remote,
		debounce: debounce,
		log:      logger.WithPrefix("notes"),
		onSaved:  opts.OnSaved,
		text:     map[model.NoteID]string{},
	}
	for _, n := range model.Notes {
		s.text[n.ID] = s.localOrPlaceholder(n)
	}
	return s
}

func (s *Syncer) localOrPlaceholder(n model.NoteDef) string {
	if s.local != nil {
		if v, ok := s.local.Get(n.ID); ok {
			return v
		}
	}
	return n.Placeholder
}

// Load fetches the server copy once. A note without a server value keeps its local text
// or placeholder. On failure every note keeps its current text and the error is returned.
func (s *Syncer) Load(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	server, err := s.remote.LoadNotes(ctx)
	if err != nil {
		s.log.Error("load notes failed", "err", err)
		return err
	}
	s.mu.Lock()
	for _, n := range model.Notes {
		if v := server[string(n.ID)]; v != "" {
			s.text[n.ID] = v
		}
	}
	s.mu.Unlock()
	return nil
}

// Get returns the current text of a note.
func (s *Syncer) Get(id model.NoteID) (string, error) {
	if _, ok := model.LookupNote(id); !ok {
		return "", ErrUnknownNote
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text[id], nil
}

// All returns the current text of every note keyed by note id.
func (s *Syncer) All() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.text))
	for id, v := range s.text {
		out[string(id)] = v
	}
	return out
}

// Set records an edit: the local write happens now, the server save is (re)scheduled.
func (s *Syncer) Set(id model.NoteID, text string) error {
	if _, ok := model.LookupNote(id); !ok {
		return ErrUnknownNote
	}
	s.mu.Lock()
	s.text[id] = text
	s.mu.Unlock()

	var localErr error
	if s.local != nil {
		if err := s.local.Put(id, text); err != nil {
			s.log.Error("local note write failed", "note", id, "err", err)
			localErr = err
		}
	}
	s.schedule()
	return localErr
}

func (s *Syncer) schedule() {
	if s.remote == nil {
		return
	}
	s.mu.Lock()
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.onTimer)
		s.mu.Unlock()
		return
	}
	s.timer.Reset(s.debounce)
	s.mu.Unlock()
}

func (s *Syncer) onTimer() {
	s.mu.Lock()
	if s.running {
		// A save is in flight; try again once it had time to finish.
		s.timer.Reset(s.debounce)
		s.mu.Unlock()
		return
	}
	if !s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = false
	s.running = true
	s.mu.Unlock()

	err := s.save(context.Background())

	s.mu.Lock()
	s.running = false
	if s.pending && s.timer != nil {
		s.timer.Reset(s.debounce)
	}
	s.mu.Unlock()

	if s.onSaved != nil {
		s.onSaved(err)
	}
}

// Flush cancels any scheduled save and pushes all notes now.
func (s *Syncer) Flush(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = false
	s.mu.Unlock()
	return s.save(ctx)
}

// Pending reports whether an edit is waiting for its server save.
func (s *Syncer) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *Syncer) save(ctx context.Context) error {
	msg, err := s.remote.SaveNotes(ctx, s.All())
	if err != nil {
		s.log.Error("save notes failed", "err", err)
		return err
	}
	s.log.Debug("notes saved", "message", msg)
	return nil
}
