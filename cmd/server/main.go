package main

import (
	"context"
	"database/sql"
	"fmt"
	"foodbridge-match-service/internal/adapters/lock"
	"foodbridge-match-service/internal/adapters/repositories"
	"foodbridge-match-service/internal/api"
	"foodbridge-match-service/internal/platform/db"
	"foodbridge-match-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, local or Redis run lock)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	donationSeedPath := getEnv("DONATION_SEED_PATH", "data/seeds/donations.json")
	requestSeedPath := getEnv("REQUEST_SEED_PATH", "data/seeds/requests.json")

	store, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer store.db.Close()

	// Seed demo data on startup for local runs; existing ids are skipped.
	if getEnv("SEED_ON_START", "true") == "true" {
		if err := seed(store, donationSeedPath, requestSeedPath); err != nil {
			log.Fatal(err)
		}
	}

	locker, err := openLocker()
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(store.donations, store.requests, store.allocations, locker)

	log.Printf("Server listening addr=:%s backend=%s", port, store.backend)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

type store struct {
	backend     string
	db          *sql.DB
	donations   ports.DonationRepository
	requests    ports.RequestRepository
	allocations ports.AllocationRepository
}

// openStore picks the storage backend: Postgres when DATABASE_URL is set,
// a local SQLite file otherwise.
func openStore() (*store, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitSchemaPostgres(pg); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return &store{
			backend:     "postgres",
			db:          pg,
			donations:   repositories.NewSQLDonationRepository(pg),
			requests:    repositories.NewSQLRequestRepository(pg),
			allocations: repositories.NewSQLAllocationRepository(pg),
		}, nil
	}

	path := getEnv("DB_PATH", "data/app.db")
	lite, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(lite); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &store{
		backend:     "sqlite",
		db:          lite,
		donations:   repositories.NewSqliteDonationRepository(lite),
		requests:    repositories.NewSqliteRequestRepository(lite),
		allocations: repositories.NewSqliteAllocationRepository(lite),
	}, nil
}

// openLocker picks the run-lock backend: Redis when REDIS_URL is set (needed
// once more than one replica can start matching runs), an in-process mutex
// otherwise.
func openLocker() (ports.RunLocker, error) {
	redisURL := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if redisURL == "" {
		return lock.NewLocalRunLock(), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("open locker: parse REDIS_URL: %w", err)
	}
	return lock.NewRedisRunLock(redis.NewClient(opts)), nil
}

func seed(s *store, donationSeedPath, requestSeedPath string) error {
	ctx := context.Background()
	if err := repositories.SeedDonationsFromJSON(ctx, s.donations, donationSeedPath); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := repositories.SeedRequestsFromJSON(ctx, s.requests, requestSeedPath); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
