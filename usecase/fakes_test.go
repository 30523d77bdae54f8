package usecase

import (
	"context"

	"github.com/notehub/notehub/model"
	"github.com/notehub/notehub/repository"
)

// In-memory stores implementing UserStore and NoteStore for unit tests.

type fakeUserStore struct {
	users map[string]*model.User // keyed by id
	err   error                 // when set, every call fails with it
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) InsertUser(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNoDocuments
}

type fakeNoteStore struct {
	notes map[string]*model.Note
	err   error
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: map[string]*model.Note{}}
}

func (f *fakeNoteStore) InsertNote(_ context.Context, note *model.Note) error {
	if f.err != nil {
		return f.err
	}
	copied := *note
	f.notes[note.ID] = &copied
	return nil
}

func (f *fakeNoteStore) FindByID(_ context.Context, id string) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	note, ok := f.notes[id]
	if !ok {
		return nil, repository.ErrNoDocuments
	}
	copied := *note
	return &copied, nil
}

func (f *fakeNoteStore) FindByOwner(_ context.Context, ownerID string) ([]*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	owned := []*model.Note{}
	for _, note := range f.notes {
		if note.OwnerID == ownerID {
			copied := *note
			owned = append(owned, &copied)
		}
	}
	return owned, nil
}

func (f *fakeNoteStore) UpdateNote(_ context.Context, note *model.Note) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.notes[note.ID]; !ok {
		return repository.ErrNoDocuments
	}
	copied := *note
	f.notes[note.ID] = &copied
	return nil
}

func (f *fakeNoteStore) DeleteNote(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.notes[id]; !ok {
		return repository.ErrNoDocuments
	}
	delete(f.notes, id)
	return nil
}
