package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tripmate/tripmate/pkg/tripmate/auth"
	"github.com/tripmate/tripmate/pkg/tripmate/database"
	"github.com/tripmate/tripmate/pkg/tripmate/models"
	"github.com/tripmate/tripmate/pkg/tripmate/trips"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get database path from environment or use default
	dbPath := os.Getenv("TRIPMATE_DB_PATH")
	if dbPath == "" {
		dbPath = "tripmate.db"
	}

	// Connect to database
	if err := database.Connect(dbPath); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Auth routes (register/login public, profile routes behind the middleware)
	authHandler := auth.NewHandler(database.GetDB())
	authHandler.RegisterRoutes(r.Group("/auth"))

	// Trip routes (all session-gated)
	tripsHandler := trips.NewHandler(database.GetDB())
	travelsGroup := r.Group("/travels")
	travelsGroup.Use(auth.AuthMiddleware())
	tripsHandler.RegisterRoutes(travelsGroup)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Tripmate server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
