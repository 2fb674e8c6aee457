package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmarkov/verascope/internal/model"
)

// writeError maps the shared error taxonomy onto HTTP statuses. Bodies stay
// single-sentence; upstream details beyond the status never leak to callers.
func writeError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"err": validationErr.Msg})
		return
	}

	var authErr *model.AuthenticationError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{"err": authErr.Msg})
		return
	}

	var externalErr *model.ExternalAPIError
	if errors.As(err, &externalErr) {
		status := http.StatusBadGateway
		if externalErr.Status >= 400 && externalErr.Status < 600 {
			status = externalErr.Status
		}
		log.Printf("external call failed: %v", externalErr)
		c.JSON(status, gin.H{"err": externalErr.Service + " request failed"})
		return
	}

	var storageErr *model.StorageError
	if errors.As(err, &storageErr) {
		log.Printf("storage failure: %v", storageErr)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "storage failure"})
		return
	}

	log.Printf("unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"err": "internal error"})
}
