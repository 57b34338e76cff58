package integration

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"bionic-interviewer-be/internal/entity"
	"bionic-interviewer-be/internal/repository/specification"
	"bionic-interviewer-be/internal/repository/unitofwork"
	"bionic-interviewer-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.InterviewRepository())
	assert.NotNil(t, uow.InterviewTokenRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Interview Repository", func(t *testing.T) {
		count, err := uow.InterviewRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Interview count: %d", count)
	})

	t.Run("Check Transcript Repository", func(t *testing.T) {
		// FindOne on a random id implies the table and columns exist
		transcript, err := uow.TranscriptRepository().FindOne(context.Background(),
			specification.ByInterviewID{InterviewID: uuid.New()},
		)
		assert.NoError(t, err)
		assert.Nil(t, transcript)
	})

	t.Run("Check Transactional Interview Creation", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		interviewId := uuid.New()
		interview := &entity.Interview{
			Id:        interviewId,
			Title:     "Integration Test Interview " + uuid.New().String(),
			Status:    entity.InterviewStatusCreated,
			CreatedAt: time.Now(),
		}
		err = uow.InterviewRepository().Create(ctx, interview)
		assert.NoError(t, err)

		token := &entity.InterviewToken{
			Id:          uuid.New(),
			InterviewId: interviewId,
			Role:        entity.TokenRoleHost,
			TokenHash:   fmt.Sprintf("%x", sha256.Sum256([]byte(uuid.New().String()))),
			ExpiresAt:   time.Now().Add(24 * time.Hour),
			CreatedAt:   time.Now(),
		}
		err = uow.InterviewTokenRepository().Create(ctx, token)
		assert.NoError(t, err)

		found, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: interviewId})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		// Rollback via defer keeps the database clean.
		t.Log("Successfully created Interview with Token in Transaction")
	})
}
