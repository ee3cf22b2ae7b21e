package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migpg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-jobboard/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	MigrateAuto = "auto"
	MigrateSQL  = "sql"
)

// Migrate auto: gorm AutoMigrate；sql: 内嵌 SQL + golang-migrate（仅 postgres）
func Migrate(ctx context.Context, db *gorm.DB, mode, driver, dsn string, l *zap.Logger) error {
	switch mode {
	case "", MigrateAuto:
		if err := db.WithContext(ctx).AutoMigrate(domain.Models()...); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
		return nil
	case MigrateSQL:
		if driver != "postgres" {
			return fmt.Errorf("sql migrations need postgres, got %q", driver)
		}
		return runSQLMigrations(dsn, l)
	default:
		return fmt.Errorf("unknown migrate mode %q", mode)
	}
}

func runSQLMigrations(dsn string, l *zap.Logger) error {
	// 独立连接，m.Close() 会关掉它，不影响 gorm 池
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	drv, err := migpg.WithInstance(sqlDB, &migpg.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	v, dirty, _ := m.Version()
	l.Info("sql migrations applied", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}
