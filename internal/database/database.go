package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver matching DATABASE_TYPE.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case config.DatabaseMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		return mysql.Open(dsn), nil
	case config.DatabasePostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.Name,
		)
		return postgres.Open(dsn), nil
	case config.DatabaseSQLite:
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// GormConfig is shared by the server and the tests. TranslateError makes
// unique violations surface as gorm.ErrDuplicatedKey on every driver.
func GormConfig(log logrus.FieldLogger, level logrus.Level) *gorm.Config {
	logLevel := logger.Warn
	if level >= logrus.DebugLevel {
		logLevel = logger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func Connect(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(log, log.GetLevel()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.WithField("type", cfg.Database.Type).Info("Database connection established")
	return db, nil
}
