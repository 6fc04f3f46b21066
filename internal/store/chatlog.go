package store

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

const (
	chatLogFileName = "chat.json"
	chatLogMax      = 200
)

// chatLogMu serializes the read-append-write in AppendChat; chat replies land from
// several goroutines at once.
var chatLogMu sync.Mutex

type ChatMessage struct {
	// Role is one of: user|ai|error
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ChatLog struct {
	Messages []ChatMessage `json:"messages"`
}

// LoadChatLog reads the local chat transcript. Missing or corrupt files read as empty.
func (s Store) LoadChatLog() *ChatLog {
	b, err := os.ReadFile(s.path(chatLogFileName))
	if err != nil {
		return &ChatLog{}
	}
	var log ChatLog
	if err := json.Unmarshal(b, &log); err != nil {
		return &ChatLog{}
	}
	return &log
}

// AppendChat appends msg, keeping only the newest messages.
func (s Store) AppendChat(msg ChatMessage) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	chatLogMu.Lock()
	defer chatLogMu.Unlock()

	log := s.LoadChatLog()
	log.Messages = append(log.Messages, msg)
	if len(log.Messages) > chatLogMax {
		log.Messages = log.Messages[len(log.Messages)-chatLogMax:]
	}
	b, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return writeFileAtomic(s.path(chatLogFileName), b, 0o644)
}
