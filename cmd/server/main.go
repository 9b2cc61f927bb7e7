package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ironforge/fitness-api/internal/api"
	"ironforge/fitness-api/internal/config"
	"ironforge/fitness-api/internal/domain"
	"ironforge/fitness-api/internal/repository"
	"ironforge/fitness-api/internal/repository/memory"
	"ironforge/fitness-api/internal/repository/mongo"
	"ironforge/fitness-api/internal/service"
	"ironforge/fitness-api/internal/storage"

	"github.com/gin-gonic/gin"
)

type repositories struct {
	users     repository.UserRepository
	goals     repository.GoalRepository
	exercises repository.ExerciseRepository
	uploads   repository.UploadRepository
	equipment repository.EquipmentRepository
	programs  repository.ProgramRepository
	workouts  repository.WorkoutRepository
}

// @title IronForge API
// @version 1.0
// @description API for strength training: goals, exercises, programs, workout logs and the plate calculator.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting IronForge API server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret must be set (JWT_SECRET)")
	}
	log.Println("Configuration loaded.")

	// --- Repositories ---
	repos, closeDB, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer closeDB()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(context.Background(), cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration)
	services := api.Services{
		Auth:      authService,
		Goals:     service.NewGoalService(repos.goals, repos.exercises),
		Exercises: service.NewExerciseService(repos.exercises, repos.uploads, fileStorage),
		Programs:  service.NewProgramService(repos.programs, repos.exercises),
		Workouts:  service.NewWorkoutService(repos.workouts, repos.exercises, repos.programs),
		Equipment: service.NewEquipmentService(repos.equipment, domain.WeightUnit(cfg.Equipment.DefaultUnit)),
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// openRepositories builds the store selected by database.driver. The returned
// func releases the connection and is safe to call for the memory driver.
func openRepositories(cfg config.DatabaseConfig) (repositories, func(), error) {
	if cfg.Driver == config.DriverMemory {
		log.Println("WARN: Using in-memory storage; data is lost on restart.")
		return repositories{
			users:     memory.NewUserRepository(),
			goals:     memory.NewGoalRepository(),
			exercises: memory.NewExerciseRepository(),
			uploads:   memory.NewUploadRepository(),
			equipment: memory.NewEquipmentRepository(),
			programs:  memory.NewProgramRepository(),
			workouts:  memory.NewWorkoutRepository(),
		}, func() {}, nil
	}

	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	appDB := dbClient.Database(cfg.Name)
	log.Println("Database connection established.")

	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			log.Printf("ERROR: Index creation failed: %v", err)
			return
		}
		log.Println("Index creation process completed.")
	}()

	closeDB := func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}

	return repositories{
		users:     mongo.NewMongoUserRepository(appDB),
		goals:     mongo.NewMongoGoalRepository(appDB),
		exercises: mongo.NewMongoExerciseRepository(appDB),
		uploads:   mongo.NewMongoUploadRepository(appDB),
		equipment: mongo.NewMongoEquipmentRepository(appDB),
		programs:  mongo.NewMongoProgramRepository(appDB),
		workouts:  mongo.NewMongoWorkoutRepository(appDB),
	}, closeDB, nil
}
