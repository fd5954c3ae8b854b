package handlers

import (
	"github.com/gin-gonic/gin"

	"newsletter-go/internal/apperr"
)

// respondError writes err as {"error": "..."} with the status its kind maps to.
func respondError(c *gin.Context, err error) {
	status, message := apperr.StatusAndMessage(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
