package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jobdesk-dev/jobdesk/db"
	"github.com/jobdesk-dev/jobdesk/internal/auth"
	"github.com/jobdesk-dev/jobdesk/internal/handlers"
	"github.com/jobdesk-dev/jobdesk/internal/mailer"
	"github.com/jobdesk-dev/jobdesk/internal/router"
	"github.com/jobdesk-dev/jobdesk/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedDatabase(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	uploadDir := os.Getenv("UPLOAD_DIR")

	if uploadDir == "" {
		uploadDir = filepath.Join("uploads", "cvs")
	}

	cvs, err := storage.NewCVStore(uploadDir)

	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	handlers.CVs = cvs

	if mail, err := mailer.NewFromEnv(); err != nil {
		log.Printf("Contact mailer disabled: %v", err)
	} else {
		handlers.Mail = mail
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
