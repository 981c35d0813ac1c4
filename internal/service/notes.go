package service

import (
	"context"
	"fmt"

	"github.com/jjenkins/gabinete/internal/model"
)

// NoteFinder looks up the technical note of a bill. It returns nil, nil when
// the bill has no note.
type NoteFinder interface {
	GetByProposal(ctx context.Context, proposalID int) (*model.Note, error)
}

// NoteLinker attaches locally stored technical notes to bills
type NoteLinker struct {
	store NoteFinder
}

// NewNoteLinker creates a new NoteLinker
func NewNoteLinker(store NoteFinder) *NoteLinker {
	return &NoteLinker{store: store}
}

// Link returns the note of a bill, or nil when there is none
func (l *NoteLinker) Link(ctx context.Context, proposalID int) (*model.Note, error) {
	note, err := l.store.GetByProposal(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoteStoreUnavailable, err)
	}
	return note, nil
}
