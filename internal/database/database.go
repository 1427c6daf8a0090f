package database

import (
	"context"
	"fmt"
	"strings"

	"team-task-api/internal/logger"
	"team-task-api/internal/models"
	"team-task-api/internal/repository"
	"team-task-api/internal/repository/mongostore"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Backend names the store implementation chosen for a connection string.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMySQL    Backend = "mysql"
	BackendMongo    Backend = "mongodb"
)

// DetectBackend picks the backend from the scheme of databaseURL.
// Anything without a known scheme is treated as a SQLite file path.
func DetectBackend(databaseURL string) Backend {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		return BackendMongo
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(databaseURL, "mysql://"):
		return BackendMySQL
	default:
		return BackendSQLite
	}
}

// Open connects to the store named by databaseURL and prepares its schema.
// The returned store is meant to live for the whole process.
func Open(ctx context.Context, databaseURL string) (repository.Store, error) {
	backend := DetectBackend(databaseURL)

	if backend == BackendMongo {
		store, err := mongostore.Open(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected", zap.String("backend", string(backend)))
		return store, nil
	}

	db, err := OpenGorm(dialector(backend, databaseURL), gormlogger.Warn)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected and migrated", zap.String("backend", string(backend)))
	return repository.NewGormStore(db), nil
}

func dialector(backend Backend, databaseURL string) gorm.Dialector {
	switch backend {
	case BackendPostgres:
		return postgres.Open(databaseURL)
	case BackendMySQL:
		return mysql.Open(mysqlDSN(databaseURL))
	default:
		return sqlite.Open(databaseURL)
	}
}

// mysqlDSN strips the mysql:// scheme the driver does not understand and
// turns on parseTime so DATETIME columns scan into time.Time.
func mysqlDSN(databaseURL string) string {
	dsn := strings.TrimPrefix(databaseURL, "mysql://")
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true"
}

// OpenGorm opens a gorm connection with duplicate-key translation and migrates the schema.
func OpenGorm(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users and tasks tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
