package unitofwork

import (
	"context"

	"zeorag-be/internal/repository/contract"

	"gorm.io/gorm"
)

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

// NewRepositoryFactory wires repositories over a write-capable connection.
// Building the factory without one is a configuration error; the store must
// never silently no-op writes.
func NewRepositoryFactory(db *gorm.DB) (RepositoryFactory, error) {
	if db == nil {
		return nil, contract.ErrNoWriteConnection
	}
	return &RepositoryFactoryImpl{db: db}, nil
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db)
}
