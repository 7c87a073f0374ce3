package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/infra-track/api-go/config"
	"github.com/infra-track/api-go/realtime"
	"github.com/infra-track/api-go/routes"
	"github.com/joho/godotenv"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db := config.InitDB()

	// Realtime fan-out hub
	hub := realtime.NewHub()
	go hub.Run()

	// Create a new Gin router
	r := gin.Default()

	// The dashboard and map pages are served from anywhere.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Initialize routes
	routes.SetupRoutes(r, db, hub)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting InfraTrack API on port %s", port)
	r.Run(":" + port)
}
