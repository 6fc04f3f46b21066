package store

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestChatLog_AppendCapsHistory(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	if got := s.LoadChatLog(); len(got.Messages) != 0 {
		t.Fatalf("expected empty log, got %d", len(got.Messages))
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < chatLogMax+5; i++ {
		msg := ChatMessage{Role: "user", Content: fmt.Sprintf("m%d", i), CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := s.AppendChat(msg); err != nil {
			t.Fatalf("AppendChat: %v", err)
		}
	}

	got := s.LoadChatLog()
	if len(got.Messages) != chatLogMax {
		t.Fatalf("expected %d messages, got %d", chatLogMax, len(got.Messages))
	}
	if got.Messages[0].Content != "m5" {
		t.Fatalf("expected oldest kept message m5, got %q", got.Messages[0].Content)
	}
	if last := got.Messages[len(got.Messages)-1].Content; last != fmt.Sprintf("m%d", chatLogMax+4) {
		t.Fatalf("unexpected newest message %q", last)
	}
}

func TestChatLog_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.AppendChat(ChatMessage{Role: "ai", Content: fmt.Sprintf("m%d", i), CreatedAt: time.Now()})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AppendChat: %v", err)
		}
	}

	if got := len(s.LoadChatLog().Messages); got != n {
		t.Fatalf("want %d messages, got %d", n, got)
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
