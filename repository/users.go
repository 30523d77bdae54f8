package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/notehub/notehub/model"
	"github.com/notehub/notehub/utils"
)

// ErrNoDocuments is returned by lookups when nothing matched. Callers decide
// whether that is a 404, a free email, or a bug.
var ErrNoDocuments = errors.New("no documents found")

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{MongoCollection: db.Collection("users")}
}

func (r *UserRepo) InsertUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		utils.TrackError("database", "user_insert_failed")
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocuments
		}
		utils.TrackError("database", "user_lookup_failed")
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}
