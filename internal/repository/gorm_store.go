package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore serves both repositories from one gorm connection.
type GormStore struct {
	db    *gorm.DB
	users UserRepository
	tasks TaskRepository
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:    db,
		users: NewUserRepository(db),
		tasks: NewTaskRepository(db),
	}
}

func (s *GormStore) Users() UserRepository { return s.users }
func (s *GormStore) Tasks() TaskRepository { return s.tasks }

// DB exposes the underlying connection, mostly for tests and migrations.
func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure GormStore implements Store at compile time.
var _ Store = (*GormStore)(nil)
