package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"catalog/internal/models"
	"catalog/internal/store"
)

// ProductStore is what the handlers need from the persistence layer.
type ProductStore interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	List(ctx context.Context, category string) ([]models.Product, error)
	Search(ctx context.Context, q string) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, fields models.ProductUpdate) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Ping(ctx context.Context) error
}

type ProductCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required,category"`
	Description string   `json:"description" binding:"required"`
	Image       string   `json:"image"`
}

/* =======================
   CREATE
======================= */

func CreateProduct(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, bindErrorMessage(err))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		created, err := products.Create(ctx, models.Product{
			Name:        strings.TrimSpace(req.Name),
			Price:       *req.Price,
			Category:    req.Category,
			Description: req.Description,
			Image:       strings.TrimSpace(req.Image),
		})
		if errors.Is(err, store.ErrDuplicateName) || errors.Is(err, store.ErrValidation) {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if err != nil {
			log.Printf("[%s] create error: %v", route, err)
			respondWithError(c, http.StatusBadRequest, route, "could not create product")
			return
		}

		log.Printf("[%s] created product %s", route, created.ID.Hex())
		c.JSON(http.StatusCreated, created)
	}
}

/* =======================
   LIST / FILTER
======================= */

func GetProducts(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		category := strings.TrimSpace(c.Query("category"))
		log.Printf("[%s] hit category=%q", route, category)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := products.List(ctx, category)
		if err != nil {
			log.Printf("[%s] list error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] returning %d products", route, len(result))
		c.JSON(http.StatusOK, result)
	}
}

/* =======================
   SEARCH
======================= */

func SearchProducts(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/search"
		defer handlePanic(c, route)

		q := c.Query("q")
		log.Printf("[%s] hit q=%q", route, q)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := products.Search(ctx, q)
		if err != nil {
			log.Printf("[%s] search error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var fields models.ProductUpdate
		if err := c.ShouldBindJSON(&fields); err != nil {
			respondWithError(c, http.StatusBadRequest, route, bindErrorMessage(err))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		updated, err := products.Update(ctx, id, fields)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if errors.Is(err, store.ErrDuplicateName) || errors.Is(err, store.ErrValidation) {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if err != nil {
			log.Printf("[%s] update error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		err = products.Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			log.Printf("[%s] delete error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
	}
}

/* =======================
   HEALTH
======================= */

func Health(products ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
