package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// InitDB loads the environment, opens the MySQL pool and ensures the schema
// exists. The handle is returned to the caller and passed explicitly into
// every component; nothing in this codebase reaches the store through a
// package global.
func InitDB() (*sql.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	// Driver-level timeouts bound every store access; a hung database
	// surfaces as a transient error instead of a stuck request.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&timeout=5s&readTimeout=5s&writeTimeout=5s",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := InitSchema(db); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return db, nil
}
