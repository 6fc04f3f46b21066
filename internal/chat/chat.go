// Package chat keeps the assistant conversation shown on the AI chat page.
package chat

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/store"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAI    Role = "ai"
	RoleError Role = "error"
)

type Bubble struct {
	ID   int
	Role Role
	// Text is the raw content; assistant replies are markdown.
	Text string
	At   time.Time
}

type Sender interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Recorder persists every bubble. store.Store satisfies it.
type Recorder interface {
	AppendChat(msg store.ChatMessage) error
}

type Session struct {
	sender Sender
	rec    Recorder
	now    func() time.Time
	log    *log.Logger

	// recMu keeps the persisted log in bubble order.
	recMu   sync.Mutex
	mu      sync.Mutex
	bubbles []Bubble
	nextID  int
}

func NewSession(sender Sender, rec Recorder, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{sender: sender, rec: rec, now: time.Now, log: logger.WithPrefix("chat")}
}

// Begin appends the user's bubble. Blank messages are ignored.
func (s *Session) Begin(message string) (Bubble, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Bubble{}, false
	}
	return s.add(RoleUser, message), true
}

// Exchange sends message and appends the reply or an error bubble. It blocks for the
// length of the request; callers that must not block run it on their own goroutine.
func (s *Session) Exchange(ctx context.Context, message string) Bubble {
	reply, err := s.sender.Chat(ctx, message)
	if err != nil {
		s.log.Warn("chat failed", "err", err)
		return s.add(RoleError, ErrorText(err))
	}
	return s.add(RoleAI, reply)
}

// Send appends the user bubble now and delivers the reply bubble on the returned channel
// once it arrives. Sends do not wait for each other.
func (s *Session) Send(ctx context.Context, message string) (Bubble, <-chan Bubble, bool) {
	user, ok := s.Begin(message)
	if !ok {
		return Bubble{}, nil, false
	}
	ch := make(chan Bubble, 1)
	go func() {
		ch <- s.Exchange(ctx, user.Text)
		close(ch)
	}()
	return user, ch, true
}

func (s *Session) Bubbles() []Bubble {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Bubble(nil), s.bubbles...)
}

// LastReply returns the newest assistant reply.
func (s *Session) LastReply() (Bubble, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.bubbles) - 1; i >= 0; i-- {
		if s.bubbles[i].Role == RoleAI {
			return s.bubbles[i], true
		}
	}
	return Bubble{}, false
}

func (s *Session) add(role Role, text string) Bubble {
	s.recMu.Lock()
	defer s.recMu.Unlock()

	s.mu.Lock()
	s.nextID++
	b := Bubble{ID: s.nextID, Role: role, Text: text, At: s.now()}
	s.bubbles = append(s.bubbles, b)
	s.mu.Unlock()

	if s.rec != nil {
		if err := s.rec.AppendChat(store.ChatMessage{Role: string(role), Content: text, CreatedAt: b.At}); err != nil {
			s.log.Warn("chat log write failed", "err", err)
		}
	}
	return b
}

// ErrorText is the text of an error bubble. Answers from the server read "Error: ...";
// requests that never got a usable answer read "Request failed: ...".
func ErrorText(err error) string {
	switch gateway.KindOf(err) {
	case gateway.KindHTTP, gateway.KindServer, gateway.KindValidation:
		return "Error: " + err.Error()
	default:
		return "Request failed: " + err.Error()
	}
}
