package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog/internal/models"
)

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"Categories": models.Categories,
		})
	}
}
