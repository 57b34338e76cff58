package main

import (
	"log"

	"bionic-interviewer-be/internal/config"
	"bionic-interviewer-be/internal/model"
	"bionic-interviewer-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	log.Println("Running migrations...")
	err = gormDB.AutoMigrate(
		&model.Interview{},
		&model.InterviewToken{},
		&model.Transcript{},
		&model.EmotionDetection{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations complete")
}
