package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
)

const (
	msgInvalidBody      = "Invalid request body"
	msgLoadFailed       = "Failed to load recipes"
	msgNotAuthenticated = "User not authenticated"
)

// statusFor maps a failed mutation onto an HTTP status
func statusFor(reason service.Reason) int {
	switch reason {
	case service.ReasonValidation:
		return http.StatusBadRequest
	case service.ReasonNotFound:
		return http.StatusNotFound
	case service.ReasonForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondResult writes a create or update outcome
func respondResult(c *gin.Context, successStatus int, res service.Result) {
	if !res.Success {
		c.JSON(statusFor(res.Reason), res)
		return
	}
	c.JSON(successStatus, res)
}
