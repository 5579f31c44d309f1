package repository

import (
	"errors"
	"fmt"
	"time"

	"shopfront/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	db *gorm.DB
}

// New opens a connection with the given dialector and migrates the catalog schema.
func New(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}
	return FromDB(db)
}

// FromDB wraps an already opened connection.
func FromDB(db *gorm.DB) (*Repository, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Migrate creates or updates all catalog tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ds.Category{},
		&ds.Subcategory{},
		&ds.Service{},
		&ds.Variant{},
		&ds.ShopStatus{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks the underlying connection.
func (r *Repository) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// deleteByID removes a single row and reports ErrNotFound when nothing matched.
func deleteByID(db *gorm.DB, model interface{}, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
