package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/models"
	"catalog/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductSchema(db); err != nil {
		log.Printf("product schema warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("category", models.CategoryValidation); err != nil {
			log.Fatal(err)
		}
	}

	products := store.NewProducts(db)

	r := gin.Default()
	r.Use(cors.New(corsConfig(config.AppEnv.CORSOrigin)))

	r.LoadHTMLGlob("templates/*")
	r.Static("/public", "./public")

	r.GET("/", handlers.Home())
	r.GET("/healthz", handlers.Health(products))

	r.POST("/products", handlers.CreateProduct(products))
	r.GET("/products", handlers.GetProducts(products))
	r.GET("/products/search", handlers.SearchProducts(products))
	r.PUT("/products/:id", handlers.UpdateProduct(products))
	r.DELETE("/products/:id", handlers.DeleteProduct(products))

	r.Run(":" + config.AppEnv.Port)
}

func corsConfig(origin string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type"}
	if origin == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = strings.Split(origin, ",")
	return cfg
}
