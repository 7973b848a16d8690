// Package repotest поднимает тестовую схему Postgres для тестов репозиториев и сервисов.
// Тесты пропускаются, если TEST_DB_DSN не задан.
package repotest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/Freeeeeet/salon_bot/internal/app"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Tables все таблицы схемы, в порядке пригодном для TRUNCATE
var Tables = []string{
	"feedback",
	"cancellations",
	"admins",
	"bookings",
	"working_hours",
	"barber_services",
	"services",
	"barbers",
	"users",
}

// NewPool возвращает пул, привязанный к отдельной схеме (search_path),
// с применённой схемой и пустыми таблицами.
func NewPool(t *testing.T, schema string) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set, skipping database test")
	}

	ctx := context.Background()

	admin, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_, err = admin.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize()))
	admin.Close(ctx)
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	Truncate(t, pool)
	return pool
}

// EnsureSchema создаёт схему через мигратор приложения. Второй прогон
// проверяет, что повторный запуск на готовой базе ничего не ломает.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	migrator, err := app.NewMigrator(pool, zap.NewNop())
	if err != nil {
		return err
	}
	defer migrator.Close()

	for i := 0; i < 2; i++ {
		if err := migrator.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}
	}

	version, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	if version < 1 {
		return fmt.Errorf("unexpected schema version %d", version)
	}
	return nil
}

// Truncate очищает все таблицы и сбрасывает последовательности
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	query := "TRUNCATE "
	for i, table := range Tables {
		if i > 0 {
			query += ", "
		}
		query += table
	}
	query += " RESTART IDENTITY CASCADE"

	if _, err := pool.Exec(context.Background(), query); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}
