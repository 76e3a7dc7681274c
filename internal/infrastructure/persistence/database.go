package persistence

import (
	"fmt"
	"time"

	"github.com/propdesk/backend/internal/infrastructure/config"
	"github.com/propdesk/backend/internal/infrastructure/logger"
	"github.com/propdesk/backend/internal/infrastructure/persistence/models"
	"github.com/propdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// Options tune how the connection logs and traces
type Options struct {
	Logger        *zap.Logger
	LogLevel      gormlogger.LogLevel
	SlowThreshold time.Duration
	Tracing       *telemetry.DBTracingConfig
}

// NewDatabase creates a new database connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithOptions(cfg, Options{LogLevel: gormlogger.Silent})
}

// NewDatabaseWithOptions creates a postgres connection with zap logging and optional tracing
func NewDatabaseWithOptions(cfg *config.DatabaseConfig, opts Options) (*Database, error) {
	db, err := Open(postgres.Open(cfg.DSN()), opts)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Open opens a connection on any dialector. Unique violations are translated
// to gorm.ErrDuplicatedKey so repositories can report conflicts.
func Open(dialector gorm.Dialector, opts Options) (*Database, error) {
	zl := opts.Logger
	if zl == nil {
		zl = zap.NewNop()
	}
	slow := opts.SlowThreshold
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.NewGormLogger(zl, opts.LogLevel, slow),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.Tracing != nil && opts.Tracing.Enabled {
		if err := telemetry.RegisterDBTracing(db, *opts.Tracing, zl); err != nil {
			return nil, fmt.Errorf("failed to register database tracing: %w", err)
		}
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Stats returns database connection pool statistics and an error if unable to retrieve
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
}

// Transaction executes a function within a database transaction
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// AutoMigrate creates the fiscal tables from the GORM models, including the
// partial unique index on the one-record-per-month slot. The production
// schema comes from the SQL migrations; this is for SQLite and tooling.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.FiscalRecordModel{},
		&models.RecordSequenceModel{},
		&models.OwnerModel{},
		&models.PropertyOwnershipModel{},
		&models.CounterpartyModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate fiscal models: %w", err)
	}
	return db.Exec(periodSlotIndexDDL).Error
}

const periodSlotIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_fiscal_records_period_slot ON fiscal_records (
	kind,
	COALESCE(CAST(owner_id AS TEXT), ''),
	COALESCE(CAST(property_id AS TEXT), ''),
	counterparty_id,
	period_month
) WHERE is_credit_note = false AND kind <> 'EXPENSE'`
