package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"exam-byte/cmd/seed_initial_data/internal/seedmodels"
	"exam-byte/internal/config"
	"exam-byte/internal/database"
	"exam-byte/internal/domain"
	"exam-byte/internal/logger"
	"exam-byte/internal/repository"
	"exam-byte/internal/util"

	"go.uber.org/zap"
)

const (
	seedFilePath = "configs/seed_data/demo_users.json"
)

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

type seeder struct {
	log          *zap.Logger
	txManager    domain.TransactionManager
	userRepo     domain.UserRepository
	questionRepo domain.QuestionRepository
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var seedUsers []seedmodels.SeedUser
	if err := json.Unmarshal(byteValue, &seedUsers); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("users_loaded", len(seedUsers)))

	s := &seeder{
		log:          log,
		txManager:    repository.NewTransactionManagerAdapter(db),
		userRepo:     repository.NewSQLXUserRepository(db),
		questionRepo: repository.NewQuestionDatabaseAdapter(db),
	}
	for _, su := range seedUsers {
		if err := s.seedUser(ctx, su); err != nil {
			log.Error("Error seeding user, transaction rolled back", zap.String("email", su.Email), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

// seedUser creates one user and their question bank in a single transaction.
// Users that already exist are skipped.
func (s *seeder) seedUser(ctx context.Context, su seedmodels.SeedUser) error {
	role, ok := domain.ParseRole(su.Role)
	if !ok {
		return fmt.Errorf("invalid role %q", su.Role)
	}
	plan, ok := domain.ParsePlan(su.Plan)
	if !ok {
		return fmt.Errorf("invalid plan %q", su.Plan)
	}

	return s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		user := domain.NewUser(util.NewULID(), su.Email, su.Name, role, plan, time.Now())
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			if domain.IsCode(err, domain.CodeConflict) {
				s.log.Info("User exists, skipping.", zap.String("email", su.Email))
				return nil
			}
			return fmt.Errorf("failed to create user %s: %w", su.Email, err)
		}
		s.log.Info("Created user.", zap.String("id", user.ID), zap.String("email", user.Email))

		for _, sq := range su.Questions {
			q := &domain.Question{
				UserID:        user.ID,
				Type:          domain.QuestionType(sq.Type),
				Difficulty:    domain.DifficultyLevel(sq.Difficulty),
				Subject:       sq.Subject,
				Question:      sq.Question,
				Options:       sq.Options,
				CorrectAnswer: sq.CorrectAnswer,
				Explanation:   sq.Explanation,
				Hint:          sq.Hint,
			}
			if err := q.Validate(); err != nil {
				s.log.Warn("Skipping invalid seed question", zap.String("question_preview", firstN(sq.Question, 20)), zap.Error(err))
				continue
			}
			if err := s.questionRepo.SaveQuestion(ctx, q); err != nil {
				return fmt.Errorf("failed to save question '%s': %w", firstN(sq.Question, 50), err)
			}
			s.log.Info("Successfully created question.", zap.String("id", q.ID))
		}
		return nil
	})
}
