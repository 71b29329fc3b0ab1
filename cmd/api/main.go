package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/sleeptrain/checkin-engine/internal/adapters/cache"
	adapterHTTP "github.com/sleeptrain/checkin-engine/internal/adapters/handler/http"
	"github.com/sleeptrain/checkin-engine/internal/adapters/repository"
	"github.com/sleeptrain/checkin-engine/internal/core/domain"
	"github.com/sleeptrain/checkin-engine/internal/core/services"
	"github.com/sleeptrain/checkin-engine/internal/core/workers"
)

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	serverPort := os.Getenv("PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "sleeptrain"
	}

	sweepInterval := 5 * time.Minute
	if v := os.Getenv("SWEEP_INTERVAL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			log.Fatalf("Critical: invalid SWEEP_INTERVAL_MINUTES %q", v)
		}
		sweepInterval = time.Duration(minutes) * time.Minute
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	clock := domain.SystemClock{}

	checkInRepo := repository.NewPostgresCheckInRepository(db)
	scheduleRepo := repository.NewPostgresScheduleRepository(db.DB)
	userRepo := repository.NewPostgresUserRepository(db.DB)

	var statsRepo domain.StatsRepository = repository.NewPostgresStatsRepository(db.DB)

	// Redis is optional: without it stats reads hit postgres directly and
	// the rate limiter is disabled.
	redisClient, err := cache.NewRedisClient(
		os.Getenv("REDIS_HOST"),
		os.Getenv("REDIS_PORT"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	} else {
		statsRepo = repository.NewCachedStatsRepository(statsRepo, redisClient)
	}

	checkInService := services.NewCheckInService(checkInRepo, scheduleRepo, statsRepo, clock)
	calendarService := services.NewCalendarService(checkInRepo, scheduleRepo, clock)
	scheduleService := services.NewScheduleService(scheduleRepo, clock)
	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(jwtSecret, jwtIssuer, 24*time.Hour, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		CheckInHandler:  adapterHTTP.NewCheckInHandler(checkInService, clock),
		CalendarHandler: adapterHTTP.NewCalendarHandler(calendarService),
		ScheduleHandler: adapterHTTP.NewScheduleHandler(scheduleService),
		TokenService:    tokenService,
		DB:              db,
		Redis:           redisClient,
		StartTime:       startTime,
	})

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	sweepWorker := workers.NewSweepWorker(checkInService, scheduleRepo, sweepInterval)
	sweepWorker.Start(workerCtx)

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Sleep Train Check-In Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
