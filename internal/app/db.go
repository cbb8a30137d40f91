package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mikekeda/athletes/internal/config"
)

// Long roster upserts are cut in span attributes.
const maxSpanQueryLen = 512

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", postgresDSN(cfg.DBURL, cfg.DBBinaryParameters),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(spanQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	// Team crawls fan out over CRAWL_MAX_WORKERS goroutines.
	db.SetMaxOpenConns(cfg.CrawlMaxWorkers + 4)
	db.SetMaxIdleConns(cfg.CrawlMaxWorkers)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// postgresDSN turns on lib/pq binary_parameters, which skips the implicit
// prepare round trip that transaction-mode poolers cannot serve. An explicit
// value in the URL wins.
func postgresDSN(raw string, binaryParameters bool) string {
	if !binaryParameters {
		return raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}
	query := parsed.Query()
	if query.Has("binary_parameters") {
		return raw
	}
	query.Set("binary_parameters", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName reads the database from a URL or a key=value DSN.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/")
	}
	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

func spanQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	if len(query) > maxSpanQueryLen {
		return query[:maxSpanQueryLen] + "..."
	}
	return query
}
