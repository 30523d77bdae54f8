package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/notehub/notehub/middleware"
	"github.com/notehub/notehub/model"
	"github.com/notehub/notehub/repository"
	"github.com/notehub/notehub/services"
	"github.com/notehub/notehub/usecase"
)

// In-memory stores so handler tests run without Mongo.

type memUserStore struct {
	users map[string]*model.User
}

func (m *memUserStore) InsertUser(_ context.Context, user *model.User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNoDocuments
}

type memNoteStore struct {
	notes map[string]*model.Note
}

func (m *memNoteStore) InsertNote(_ context.Context, note *model.Note) error {
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memNoteStore) FindByID(_ context.Context, id string) (*model.Note, error) {
	note, ok := m.notes[id]
	if !ok {
		return nil, repository.ErrNoDocuments
	}
	copied := *note
	return &copied, nil
}

func (m *memNoteStore) FindByOwner(_ context.Context, ownerID string) ([]*model.Note, error) {
	owned := []*model.Note{}
	for _, note := range m.notes {
		if note.OwnerID == ownerID {
			copied := *note
			owned = append(owned, &copied)
		}
	}
	return owned, nil
}

func (m *memNoteStore) UpdateNote(_ context.Context, note *model.Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return repository.ErrNoDocuments
	}
	copied := *note
	m.notes[note.ID] = &copied
	return nil
}

func (m *memNoteStore) DeleteNote(_ context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return repository.ErrNoDocuments
	}
	delete(m.notes, id)
	return nil
}

// newTestRouter wires the real middleware, usecases, and handlers over the
// in-memory stores, mirroring the route layout in main.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := services.NewTokenService("test-secret", 24*time.Hour)
	logger := zap.NewNop()

	userService := &usecase.UserService{
		Users:  &memUserStore{users: map[string]*model.User{}},
		Tokens: tokens,
	}
	noteService := &usecase.NoteService{
		Notes: &memNoteStore{notes: map[string]*model.Note{}},
	}

	authHandler := NewAuthHandler(userService, logger)
	notesHandler := NewNotesHandler(noteService, logger)

	router := gin.New()
	users := router.Group("/api/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}
	notes := router.Group("/api/notes")
	notes.Use(middleware.AuthMiddleware(tokens))
	{
		notes.POST("", notesHandler.Create)
		notes.GET("", notesHandler.List)
		notes.GET("/:id", notesHandler.Get)
		notes.PUT("/:id", notesHandler.Update)
		notes.DELETE("/:id", notesHandler.Delete)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// signup registers an account and logs in, returning the bearer token.
func signup(t *testing.T, router *gin.Engine, username, email, password string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/users/register", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register: %s", w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login: %s", w.Body.String())

	token, ok := decodeBody(t, w)["token"].(string)
	require.True(t, ok, "login response must contain a token")
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}
