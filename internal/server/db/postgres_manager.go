package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/server/files"
	"github.com/dmitrijs2005/filekeeper/internal/server/migrations"
	"github.com/dmitrijs2005/filekeeper/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresManager struct {
	dsn   string
	db    *sql.DB
	users users.Repository
	files files.Repository
}

func NewPostgresManager(dsn string) *PostgresManager {
	return &PostgresManager{dsn: dsn}
}

func (m *PostgresManager) Open(ctx context.Context) error {

	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := m.runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migration error: %w", err)
	}

	m.db = db
	m.users = users.NewPostgresRepository(db)
	m.files = files.NewPostgresRepository(db)

	return nil
}

func (m *PostgresManager) runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (m *PostgresManager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *PostgresManager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("db not opened")
	}
	return m.db.PingContext(ctx)
}

func (m *PostgresManager) Users() users.Repository {
	return m.users
}

func (m *PostgresManager) Files() files.Repository {
	return m.files
}
