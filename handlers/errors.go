package handlers

import (
	"errors"
	"log"
	"net/http"

	"restaurant-admin/middleware"
	"restaurant-admin/models"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUniquenessViolation):
		return http.StatusConflict
	case errors.Is(err, models.ErrReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAuthenticationFailure):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrAuthorizationFailure):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON with field messages when it carries any.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		body["error"] = "internal server error"
	}
	if fields := models.FieldMessages(err); fields != nil {
		body["fields"] = fields
	}
	c.AbortWithStatusJSON(status, body)
}

// deny handles a failed permission check on the admin surface: the caller is
// sent to the login page and nothing is touched.
func deny(c *gin.Context, err error) {
	if errors.Is(err, models.ErrAuthenticationFailure) || errors.Is(err, models.ErrAuthorizationFailure) {
		middleware.RedirectToLogin(c, LoginPath)
		return
	}
	respondError(c, err)
}
