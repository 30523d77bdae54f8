package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notehub/notehub/model"
	"github.com/notehub/notehub/utils"
)

type NoteRepo struct {
	MongoCollection *mongo.Collection
}

func NewNoteRepo(db *mongo.Database) *NoteRepo {
	return &NoteRepo{MongoCollection: db.Collection("notes")}
}

func (r *NoteRepo) InsertNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("database", "note_insert_failed")
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepo) FindByID(ctx context.Context, id string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocuments
		}
		utils.TrackError("database", "note_lookup_failed")
		return nil, fmt.Errorf("find note by id: %w", err)
	}
	return &note, nil
}

// FindByOwner returns every note owned by ownerID, newest first.
func (r *NoteRepo) FindByOwner(ctx context.Context, ownerID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		utils.TrackError("database", "note_list_failed")
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		utils.TrackError("database", "note_decode_failed")
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

// UpdateNote overwrites title and content of a single note. Ownership is
// checked by the caller before this runs; the filter is id-only on purpose so
// a miss always means the note vanished between lookup and write.
func (r *NoteRepo) UpdateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": note.ID}, update)
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return fmt.Errorf("update note: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}

func (r *NoteRepo) DeleteNote(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.TrackError("database", "note_delete_failed")
		return fmt.Errorf("delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNoDocuments
	}
	return nil
}
