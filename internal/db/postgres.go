package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/envutil"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := envutil.Str("POSTGRES_PASSWORD", "")
	name := envutil.Str("POSTGRES_NAME", "evela")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := MigrateModels(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

// MigrateModels is shared with the test harness, which runs it against its
// own database handle.
func MigrateModels(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.Report{},
		&domain.Parameter{},
		&domain.Assessment{},
		&domain.RiskScore{},
		&domain.DailyTask{},
		&domain.Insight{},
		&domain.EmergencyContact{},
		&domain.SosAlert{},
		&domain.ChatMessage{},
		&domain.PeriodCycle{},
		&domain.WaterIntake{},
		&domain.StepsEntry{},
		&domain.JobRun{},
	)
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
