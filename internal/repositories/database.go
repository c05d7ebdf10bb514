package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Repositories struct {
	DB           *sql.DB
	Transactor   Transactor
	User         UserRepository
	Product      ProductRepository
	Catalog      CatalogRepository
	Cart         CartRepository
	Order        OrderRepository
	Review       ReviewRepository
	Notification NotificationRepository
}

// Open connects to PostgreSQL through an instrumented driver, applies the pool settings
// and creates any missing tables.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("Database connection established", slog.String("host", cfg.Database.Host), slog.String("database", cfg.Database.Name))

	return New(db), nil
}

// New builds every repository on top of an existing handle.
func New(db *sql.DB) *Repositories {
	return &Repositories{
		DB:           db,
		Transactor:   NewTransactor(db),
		User:         NewUserRepo(db),
		Product:      NewProductRepo(db),
		Catalog:      NewCatalogRepo(db),
		Cart:         NewCartRepo(db),
		Order:        NewOrderRepo(db),
		Review:       NewReviewRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
