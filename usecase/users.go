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

// UserStore is the slice of the user repository this service needs.
type UserStore interface {
	InsertUser(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserService struct {
	Users  UserStore
	Tokens *services.TokenService
}

// Register creates an account. Email is the uniqueness key; duplicate
// usernames are allowed. The returned user has the password hash cleared.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNoDocuments) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Users.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password fail differently (404 vs 401) by contract.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocuments) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !services.CheckPassword(user.Password, password) {
		return nil, "", ErrBadCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}
