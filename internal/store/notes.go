package store

import (
	"errors"
	"fmt"

	"editdesk-cli/internal/model"
)

// NoteStore keeps the local copy of each note as plain text under the note's storage key.
type NoteStore struct {
	KV KV
}

// Get returns the locally stored text and whether the slot exists.
func (s NoteStore) Get(id model.NoteID) (string, bool) {
	def, ok := model.LookupNote(id)
	if !ok || s.KV == nil {
		return "", false
	}
	b, err := s.KV.Get(def.StorageKey)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (s NoteStore) Put(id model.NoteID, text string) error {
	def, ok := model.LookupNote(id)
	if !ok {
		return fmt.Errorf("unknown note: %s", id)
	}
	if s.KV == nil {
		return errors.New("note store: no backend")
	}
	return s.KV.Put(def.StorageKey, []byte(text))
}
