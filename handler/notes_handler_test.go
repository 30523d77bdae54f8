package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteCRUDEndpoints(t *testing.T) {
	router := newTestRouter(t)

	token := signup(t, router, "alice", "alice@x.com", "pw1")

	// Create.
	w := doJSON(t, router, http.MethodPost, "/api/notes", token, map[string]string{
		"title": "a", "content": "b",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	note := decodeBody(t, w)["note"].(map[string]interface{})
	noteID := note["id"].(string)
	require.NotEmpty(t, noteID)
	assert.Equal(t, "a", note["title"])

	// List includes it.
	w = doJSON(t, router, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notes := decodeBody(t, w)["notes"].([]interface{})
	require.Len(t, notes, 1)

	// Get it back.
	w = doJSON(t, router, http.MethodGet, "/api/notes/"+noteID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Partial update: only title, content stays.
	w = doJSON(t, router, http.MethodPut, "/api/notes/"+noteID, token, map[string]string{
		"title": "renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["note"].(map[string]interface{})
	assert.Equal(t, "renamed", updated["title"])
	assert.Equal(t, "b", updated["content"])

	// Delete.
	w = doJSON(t, router, http.MethodDelete, "/api/notes/"+noteID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "note deleted successfully", decodeBody(t, w)["message"])

	// Gone now.
	w = doJSON(t, router, http.MethodGet, "/api/notes/"+noteID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoteEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, req := range []struct{ method, path string }{
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes"},
		{http.MethodGet, "/api/notes/some-id"},
		{http.MethodPut, "/api/notes/some-id"},
		{http.MethodDelete, "/api/notes/some-id"},
	} {
		w := doJSON(t, router, req.method, req.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}
}

func TestCreateNoteRequiresTitleAndContent(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "alice", "alice@x.com", "pw1")

	for _, body := range []map[string]string{
		{"title": "only title"},
		{"content": "only content"},
		{},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/notes", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

// The ownership scenario end to end: another account sees a foreign note as
// 403, never 404, and never in its own list.
func TestNoteOwnershipScenario(t *testing.T) {
	router := newTestRouter(t)

	aliceToken := signup(t, router, "alice", "alice@x.com", "pw1")
	bobToken := signup(t, router, "bob", "bob@x.com", "pw2")

	w := doJSON(t, router, http.MethodPost, "/api/notes", aliceToken, map[string]string{
		"title": "a", "content": "b",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	noteID := decodeBody(t, w)["note"].(map[string]interface{})["id"].(string)

	// Bob's list excludes Alice's note.
	w = doJSON(t, router, http.MethodGet, "/api/notes", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["notes"])

	// Bob gets 403 on get, update, delete of the existing note.
	w = doJSON(t, router, http.MethodGet, "/api/notes/"+noteID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/notes/"+noteID, bobToken, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/notes/"+noteID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The note is untouched for Alice.
	w = doJSON(t, router, http.MethodGet, "/api/notes/"+noteID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a", decodeBody(t, w)["note"].(map[string]interface{})["title"])
}

func TestUpdateNonexistentNote(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "alice", "alice@x.com", "pw1")

	w := doJSON(t, router, http.MethodPut, "/api/notes/does-not-exist", token, map[string]string{
		"title": "x",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
