package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/middleware"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
	appErrors "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/errors"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/response"
)

// currentUser returns the caller's claims or writes a 401 and returns false.
func currentUser(c *gin.Context) (*models.JWTClaims, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return claims, true
}

// dayParam parses the :day path segment (0 = Monday).
func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "day must be an integer between 0 and 6"))
		return 0, false
	}
	return day, true
}
