package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yungbote/delibrium-backend/internal/data/db"
	"github.com/yungbote/delibrium-backend/internal/data/repos"
	"github.com/yungbote/delibrium-backend/internal/pkg/logger"
	"github.com/yungbote/delibrium-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	dimensionRepo := repos.NewDimensionRepo(thePG, log)
	commentRepo := repos.NewCommentRepo(thePG, log)
	stanceVectorRepo := repos.NewStanceVectorRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	oracle, err := services.NewStanceOracle(log)
	if err != nil {
		log.Fatal("Could not init StanceOracle", "error", err)
	}
	registry := services.NewDimensionRegistry(dimensionRepo, log)
	calculator := services.NewStanceCalculator(commentRepo, dimensionRepo, stanceVectorRepo, oracle, log)
	analyzer := services.NewConsensusAnalyzer(commentRepo, stanceVectorRepo, log)

	// The API layer mounts on top of these; the engine itself just waits.
	_ = registry
	_ = calculator
	_ = analyzer

	log.Info("Stance engine initialized, waiting for shutdown signal...")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("Shutting down")
}
