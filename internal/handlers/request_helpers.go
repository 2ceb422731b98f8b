package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// bindErrorMessage turns gin binding failures into the short field-level
// messages the frontend alerts verbatim.
func bindErrorMessage(err error) string {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		parts := make([]string, 0, len(verr))
		for _, fe := range verr {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				parts = append(parts, fmt.Sprintf("%s is required", field))
			case "category":
				parts = append(parts, fmt.Sprintf("%s must be one of the known categories", field))
			default:
				parts = append(parts, fmt.Sprintf("%s is invalid", field))
			}
		}
		return strings.Join(parts, ", ")
	}
	return "invalid body"
}
