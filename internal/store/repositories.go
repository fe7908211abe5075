package store

import (
	"context"

	"github.com/kjmin/go-board/internal/config"
	"github.com/kjmin/go-board/internal/logger"
)

// Repositories bundles every store-layer dependency the service layer
// needs, sharing one database connection pool.
type Repositories struct {
	AccountRepository AccountRepository
	PostRepository    PostRepository
	Bootstrap         *Bootstrap
}

// NewRepositories connects to PostgreSQL and wires the repositories and
// the bootstrap initializer over the shared connection.
func NewRepositories(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Repositories, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		AccountRepository: NewAccountRepository(db, logger),
		PostRepository:    NewPostRepository(db, logger),
		Bootstrap:         NewBootstrap(db, logger),
	}, nil
}
