package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/notehub/notehub/dto"
	"github.com/notehub/notehub/middleware"
	"github.com/notehub/notehub/usecase"
	"github.com/notehub/notehub/utils"
)

type NotesHandler struct {
	notes *usecase.NoteService
	log   *zap.Logger
}

func NewNotesHandler(notes *usecase.NoteService, log *zap.Logger) *NotesHandler {
	return &NotesHandler{notes: notes, log: log}
}

// respondError maps usecase sentinels onto the error taxonomy. ErrNoIdentity
// should be unreachable behind the auth middleware but is handled anyway.
func (h *NotesHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		utils.BadRequest(c, "title and content required")
	case errors.Is(err, usecase.ErrNoIdentity):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, usecase.ErrNotOwner):
		utils.Forbidden(c, err.Error())
	default:
		h.log.Error("note operation failed", zap.Error(err))
		utils.InternalError(c, "server error", err)
	}
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "title and content required")
		return
	}

	note, err := h.notes.Create(c.Request.Context(), middleware.UserID(c), req.Title, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Created(c, dto.NoteEnvelope{
		Message: "note created successfully",
		Note:    dto.ToNoteResponse(note),
	})
}

// List handles GET /api/notes.
func (h *NotesHandler) List(c *gin.Context) {
	notes, err := h.notes.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.NotesResponse{Notes: dto.ToNoteResponses(notes)})
}

// Get handles GET /api/notes/:id.
func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.NoteEnvelope{Note: dto.ToNoteResponse(note)})
}

// Update handles PUT /api/notes/:id. Both fields are optional; empty means
// keep the stored value.
func (h *NotesHandler) Update(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := h.notes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.NoteEnvelope{
		Message: "note updated successfully",
		Note:    dto.ToNoteResponse(note),
	})
}

// Delete handles DELETE /api/notes/:id.
func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, &utils.Response{Message: "note deleted successfully"})
}
