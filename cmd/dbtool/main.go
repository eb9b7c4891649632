package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"foodbridge-match-service/internal/adapters/lock"
	"foodbridge-match-service/internal/adapters/repositories"
	"foodbridge-match-service/internal/api/dto"
	"foodbridge-match-service/internal/domain"
	"foodbridge-match-service/internal/platform/db"
	"foodbridge-match-service/internal/ports"
	"foodbridge-match-service/internal/services"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	_ "modernc.org/sqlite"
)

// Operational companion to the server: schema init, demo seeding, and
// one-shot matching runs without going through HTTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	app := &cli.App{
		Name:  "dbtool",
		Usage: "FoodBridge match store administration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the database schema",
				Action: func(c *cli.Context) error {
					s, err := openStore()
					if err != nil {
						return err
					}
					defer s.db.Close()
					log.Println("Schema ready.")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "load demo donations and requests from JSON seed files",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "donations", Value: "data/seeds/donations.json", Usage: "donation seed file"},
					&cli.StringFlag{Name: "requests", Value: "data/seeds/requests.json", Usage: "request seed file"},
				},
				Action: func(c *cli.Context) error {
					s, err := openStore()
					if err != nil {
						return err
					}
					defer s.db.Close()

					log.Println("Seeding database...")
					if err := repositories.SeedDonationsFromJSON(c.Context, s.donations, c.String("donations")); err != nil {
						return err
					}
					if err := repositories.SeedRequestsFromJSON(c.Context, s.requests, c.String("requests")); err != nil {
						return err
					}
					log.Println("Seeding complete.")
					return nil
				},
			},
			{
				Name:  "match",
				Usage: "execute one matching run and print the result as JSON",
				Flags: []cli.Flag{
					&cli.TimestampFlag{
						Name:   "now",
						Layout: time.RFC3339,
						Usage:  "pin the engine clock (RFC3339) for reproducible runs",
					},
				},
				Action: func(c *cli.Context) error {
					s, err := openStore()
					if err != nil {
						return err
					}
					defer s.db.Close()

					now := time.Now().UTC()
					if t := c.Timestamp("now"); t != nil {
						now = t.UTC()
					}

					locker, err := openLocker()
					if err != nil {
						return err
					}

					result, err := services.RunMatching(
						c.Context, now, locker,
						s.donations, s.requests, s.allocations,
					)
					if err != nil {
						return err
					}

					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(runResultToDTO(result))
				},
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// openLocker picks the run-lock backend the same way the server does: Redis
// when REDIS_URL is set, an in-process mutex otherwise. A dbtool run against
// a store shared with a running server must contend on the same lock, or two
// runs can allocate the same residual supply.
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

// runResultToDTO maps a run result onto the same wire shape the HTTP API
// returns, so dbtool output and API output stay interchangeable.
func runResultToDTO(r *domain.RunResult) dto.RunMatchingResponse {
	res := dto.RunMatchingResponse{
		RunID:            r.RunID,
		CreatedAt:        r.CreatedAt,
		Allocations:      make([]dto.AllocationResponse, 0, len(r.Allocations)),
		TotalsByItem:     r.TotalsByItem,
		TotalsByCategory: r.TotalsByCategory,
		Summary: dto.RunSummaryResponse{
			DonationsTouched: r.Summary.DonationsTouched,
			RequestsTouched:  r.Summary.RequestsTouched,
			Allocations:      r.Summary.Allocations,
		},
		Warnings: r.Warnings,
	}
	for _, a := range r.Allocations {
		res.Allocations = append(res.Allocations, dto.AllocationResponse{
			ID:         a.ID,
			RunID:      a.RunID,
			DonationID: a.DonationID,
			RequestID:  a.RequestID,
			ItemLabel:  a.ItemLabel,
			Category:   a.Category,
			Qty:        a.Quantity,
			Unit:       a.Unit,
			DistanceKm: a.DistanceKm,
			Score:      a.Score,
			CreatedAt:  a.CreatedAt,
		})
	}
	return res
}

type store struct {
	db          *sql.DB
	donations   ports.DonationRepository
	requests    ports.RequestRepository
	allocations ports.AllocationRepository
}

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
			db:          pg,
			donations:   repositories.NewSQLDonationRepository(pg),
			requests:    repositories.NewSQLRequestRepository(pg),
			allocations: repositories.NewSQLAllocationRepository(pg),
		}, nil
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "data/app.db"
	}
	lite, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(lite); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &store{
		db:          lite,
		donations:   repositories.NewSqliteDonationRepository(lite),
		requests:    repositories.NewSqliteRequestRepository(lite),
		allocations: repositories.NewSqliteAllocationRepository(lite),
	}, nil
}
