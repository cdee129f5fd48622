package main

import (
	"net/http"
	"os"

	"cricket-auction/internal/database"
	"cricket-auction/internal/logger"
	"cricket-auction/internal/models"
	"cricket-auction/internal/routes"
)

func main() {
	log := logger.NewLogger("auction-server")
	defer log.Sync()

	db, err := database.InitDB()
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	hub := models.NewHub()
	go hub.Run()

	router := routes.RegisterAllRoutes(db, hub, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Server is running", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
