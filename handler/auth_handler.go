package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/notehub/notehub/dto"
	"github.com/notehub/notehub/usecase"
	"github.com/notehub/notehub/utils"
)

type AuthHandler struct {
	users *usecase.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *usecase.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

// bindError distinguishes a missing required field from malformed JSON so the
// 400 message says which one it was.
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return "all fields are required"
	}
	return "invalid request body"
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, usecase.ErrEmailTaken):
			utils.Conflict(c, err.Error())
		default:
			h.log.Error("registration failed", zap.Error(err))
			utils.InternalError(c, "server error", err)
		}
		return
	}

	utils.Created(c, dto.RegisterResponse{
		Message: "user registered successfully",
		User:    dto.ToUserResponse(user),
	})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, bindError(err))
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, usecase.ErrUserNotFound):
			utils.NotFound(c, err.Error())
		case errors.Is(err, usecase.ErrBadCredentials):
			utils.Unauthorized(c, err.Error())
		default:
			h.log.Error("login failed", zap.Error(err))
			utils.InternalError(c, "server error", err)
		}
		return
	}

	utils.Success(c, dto.LoginResponse{
		Message: "login successful",
		User:    dto.ToUserResponse(user),
		Token:   token,
	})
}
