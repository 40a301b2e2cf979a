package handlers

import (
	"errors"
	"net/http"

	"assessment-service/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		validation *apperr.ValidationError
		notFound   *apperr.NotFoundError
		conflict   *apperr.ConflictError
		transient  *apperr.TransientStorageError
		config     *apperr.ConfigurationError
	)
	switch {
	case errors.As(err, &validation):
		body := gin.H{"error": validation.Msg}
		if validation.MissingCount > 0 {
			body["missing_count"] = validation.MissingCount
			body["missing_question_ids"] = validation.MissingQuestionIDs
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.As(err, &transient):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "storage temporarily unavailable, retry the request",
		})
	case errors.As(err, &config):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": config.Error(),
			"code":  "CONFIGURATION_ERROR",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
