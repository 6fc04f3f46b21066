// Package pagefee holds the page-fee checklist as last loaded from the server and applies
// checkbox changes optimistically.
package pagefee

import (
	"context"
	"errors"
	"sync"

	"editdesk-cli/internal/gateway"
	"editdesk-cli/internal/model"
)

var ErrNoRow = errors.New("no such manuscript row")

// Remote is the slice of the gateway the board talks to.
type Remote interface {
	PageFees(ctx context.Context, filter gateway.Filter) ([]model.PageFeeRow, error)
	UpdateStatus(ctx context.Context, manuscript, statusType string, checked bool) (string, error)
}

type Board struct {
	remote Remote

	mu     sync.Mutex
	filter gateway.Filter
	rows   []model.PageFeeRow
	loaded bool
}

func NewBoard(remote Remote) *Board {
	return &Board{remote: remote, filter: gateway.FilterAll}
}

// Load fetches rows for filter and replaces the board. Responses are applied in the
// order they arrive.
func (b *Board) Load(ctx context.Context, filter gateway.Filter) ([]model.PageFeeRow, error) {
	rows, err := b.remote.PageFees(ctx, filter)
	if err != nil {
		return nil, err
	}
	b.Replace(filter, rows)
	return rows, nil
}

// Replace installs a loaded row set.
func (b *Board) Replace(filter gateway.Filter, rows []model.PageFeeRow) {
	b.mu.Lock()
	b.filter = filter
	b.rows = append([]model.PageFeeRow(nil), rows...)
	b.loaded = true
	b.mu.Unlock()
}

func (b *Board) Rows() []model.PageFeeRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.PageFeeRow(nil), b.rows...)
}

func (b *Board) Filter() gateway.Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Flip inverts one checkbox locally and returns the value it had before.
func (b *Board) Flip(manuscript, statusType string) (prev bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.index(manuscript)
	if i < 0 {
		return false, ErrNoRow
	}
	prev, ok := b.rows[i].Status(statusType)
	if !ok {
		return false, errors.New("unknown status type: " + statusType)
	}
	b.rows[i] = b.rows[i].WithStatus(statusType, !prev)
	return prev, nil
}

// Revert puts a checkbox back to prev. Other cells are left alone.
func (b *Board) Revert(manuscript, statusType string, prev bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(manuscript); i >= 0 {
		b.rows[i] = b.rows[i].WithStatus(statusType, prev)
	}
}

// Toggle flips a checkbox, tells the server, and rolls the checkbox back if the server
// call fails.
func (b *Board) Toggle(ctx context.Context, manuscript, statusType string) (bool, error) {
	st, err := gateway.ParseStatusType(statusType)
	if err != nil {
		return false, err
	}
	prev, err := b.Flip(manuscript, st)
	if err != nil {
		return false, err
	}
	if _, err := b.remote.UpdateStatus(ctx, manuscript, st, !prev); err != nil {
		b.Revert(manuscript, st, prev)
		return prev, err
	}
	return !prev, nil
}

func (b *Board) index(manuscript string) int {
	for i := range b.rows {
		if b.rows[i].Manuscript == manuscript {
			return i
		}
	}
	return -1
}
