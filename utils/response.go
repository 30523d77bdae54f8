package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope used by every handler. Message carries the
// human-readable outcome; Error carries the underlying cause for 500s.
type Response struct {
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &Response{Message: message})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{Message: message})
}

func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, &Response{Message: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{Message: message})
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, &Response{Message: message})
}

func InternalError(c *gin.Context, message string, err error) {
	resp := &Response{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
