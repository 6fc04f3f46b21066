package store

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small UI choices restored on relaunch.
// It is best effort: callers tolerate missing/invalid data.
type TUIState struct {
	Version int `json:"version"`

	// Page is the last visible page id.
	Page string `json:"page,omitempty"`

	// SearchType is one of: employee|id|manuscript
	SearchType string `json:"searchType,omitempty"`

	// PageFeeFilter is one of: all|unprocessed
	PageFeeFilter string `json:"pageFeeFilter,omitempty"`
}

func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.path(tuiStateFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt state reads as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path(tuiStateFileName), b, 0o644)
}
