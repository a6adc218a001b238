package database

import (
	"careerpath-backend/internal/store"
	"careerpath-backend/internal/store/memory"
	"careerpath-backend/internal/store/postgres"
	"careerpath-backend/internal/store/sqlite"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Open selects a consultation store from the connection string's scheme.
//
//	""                               -> nil store (endpoints answer "not configured")
//	postgres://, postgresql://       -> PostgreSQL via pgxpool
//	sqlite://<path>, sqlite::memory: -> SQLite
//	memory://                        -> in-process store
//
// Pool creation is lazy; an unreachable database is logged, not fatal,
// so requests report store failures instead of the process exiting.
func Open(ctx context.Context, url string) (store.Store, error) {
	url = strings.TrimSpace(url)
	switch {
	case url == "":
		log.Println("[Database] No DATABASE_URL configured; consultation store disabled.")
		return nil, nil

	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pool, err := pgxpool.New(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("unable to create database connection pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Printf("WARN: Unable to ping database, continuing: %v", err)
		} else {
			log.Println("Database connection pool established and pinged successfully.")
		}
		return postgres.NewPostgresStore(pool), nil

	case strings.HasPrefix(url, "sqlite:"):
		path := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite:"), "//")
		if path == "" {
			return nil, fmt.Errorf("sqlite DATABASE_URL is missing a path")
		}
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Database] SQLite store opened at %s", path)
		return s, nil

	case strings.HasPrefix(url, "memory:"):
		log.Println("[Database] Using in-memory consultation store; data is lost on restart.")
		return memory.New(), nil
	}

	return nil, fmt.Errorf("unsupported DATABASE_URL scheme in %q", schemeOf(url))
}

func schemeOf(url string) string {
	if i := strings.Index(url, ":"); i >= 0 {
		return url[:i]
	}
	return url
}
