package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/notehub/notehub/model"
	"github.com/notehub/notehub/repository"
	"github.com/notehub/notehub/services"
)

// NoteStore is the slice of the note repository this service needs.
type NoteStore interface {
	InsertNote(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, id string) (*model.Note, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id string) error
}

// NoteService enforces the ownership invariant: every operation beyond Create
// loads the note first and compares its owner against the caller, so a
// foreign note is always a 403 and a missing one always a 404.
type NoteService struct {
	Notes NoteStore
	Cache *services.NoteCache
}

func (s *NoteService) Create(ctx context.Context, callerID, title, content string) (*model.Note, error) {
	if callerID == "" {
		return nil, ErrNoIdentity
	}
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}

	now := time.Now()
	note := &model.Note{
		ID:        uuid.NewString(),
		OwnerID:   callerID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Notes.InsertNote(ctx, note); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, callerID)
	return note, nil
}

func (s *NoteService) List(ctx context.Context, callerID string) ([]*model.Note, error) {
	if callerID == "" {
		return nil, ErrNoIdentity
	}

	if notes, ok := s.Cache.GetList(ctx, callerID); ok {
		return notes, nil
	}

	notes, err := s.Notes.FindByOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}

	s.Cache.SetList(ctx, callerID, notes)
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	if callerID == "" {
		return nil, ErrNoIdentity
	}
	return s.loadOwned(ctx, callerID, noteID)
}

// Update replaces title and content only where the incoming value is
// non-empty; an empty field keeps the stored value. There is deliberately no
// way to clear a field here.
func (s *NoteService) Update(ctx context.Context, callerID, noteID, title, content string) (*model.Note, error) {
	if callerID == "" {
		return nil, ErrNoIdentity
	}

	note, err := s.loadOwned(ctx, callerID, noteID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		note.Title = title
	}
	if content != "" {
		note.Content = content
	}
	note.UpdatedAt = time.Now()

	if err := s.Notes.UpdateNote(ctx, note); err != nil {
		if errors.Is(err, repository.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	s.Cache.Invalidate(ctx, callerID)
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, callerID, noteID string) error {
	if callerID == "" {
		return ErrNoIdentity
	}

	if _, err := s.loadOwned(ctx, callerID, noteID); err != nil {
		return err
	}

	if err := s.Notes.DeleteNote(ctx, noteID); err != nil {
		if errors.Is(err, repository.ErrNoDocuments) {
			return ErrNoteNotFound
		}
		return err
	}

	s.Cache.Invalidate(ctx, callerID)
	return nil
}

// loadOwned fetches a note and runs the ownership check. Order matters: a
// nonexistent note is 404 for everyone, an existing foreign note is 403.
func (s *NoteService) loadOwned(ctx context.Context, callerID, noteID string) (*model.Note, error) {
	note, err := s.Notes.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	if note.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	return note, nil
}
