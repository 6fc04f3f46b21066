package tui

import (
	"editdesk-cli/internal/chat"
	"editdesk-cli/internal/gateway"
)

type statusClearMsg struct{ seq int }

type searchDoneMsg struct {
	res gateway.SearchResult
	err error
}

type reviewDoneMsg struct {
	res gateway.ReviewResult
	err error
}

type folderDoneMsg struct {
	program bool
	message string
	err     error
}

type folderResetMsg struct {
	program bool
	seq     int
}

type feeLoadedMsg struct {
	filter gateway.Filter
	err    error
}

type feeUpdatedMsg struct {
	manuscript string
	statusType string
	prev       bool
	message    string
	err        error
}

type scrapeDoneMsg struct {
	res gateway.ScrapeResult
	err error
}

type notesLoadedMsg struct{ err error }

// notesSavedMsg reports a debounced background save.
type notesSavedMsg struct{ err error }

// notesFlushedMsg reports an explicit ctrl+s save.
type notesFlushedMsg struct{ err error }

type chatReplyMsg struct{ bubble chat.Bubble }
