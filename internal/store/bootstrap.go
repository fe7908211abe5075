package store

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/kjmin/go-board/internal/logger"
)

const (
	// bootstrapAdminUsername is the account seeded on first startup.
	bootstrapAdminUsername = "admin"

	// bootstrapAdminPassword is the fixed, publicly known initial password
	// of the seeded admin account. Operators are expected to change it
	// after first login.
	bootstrapAdminPassword = "admin"
)

// Bootstrap guarantees that the schema exists and that exactly one
// bootstrap admin account was seeded before the board serves requests.
//
// EnsureReady is idempotent and safe under concurrent callers: a mutex
// spans the check and the set of the ready flag, so only one caller
// performs the work while the rest observe the flag and return. The seed
// itself uses ON CONFLICT DO NOTHING, so an existing "admin" account's
// credential is never overwritten even across process restarts.
type Bootstrap struct {
	db     *DB
	logger *logger.Logger

	mu    sync.Mutex
	ready bool
}

// NewBootstrap constructs a Bootstrap for the given connection.
func NewBootstrap(db *DB, logger *logger.Logger) *Bootstrap {
	return &Bootstrap{
		db:     db,
		logger: logger,
	}
}

// EnsureReady creates the account and post storage if absent and seeds the
// bootstrap admin exactly once. Any storage failure is returned to the
// caller; the process must treat a failure here as fatal rather than serve
// requests against a half-initialized store.
func (b *Bootstrap) EnsureReady(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}

	if err := b.db.Migrate(); err != nil {
		b.logger.Err(err).Str("func", "*Bootstrap.EnsureReady").Msg("schema migration failed")
		return fmt.Errorf("schema migration failed: %w", err)
	}

	if err := b.seedAdmin(ctx); err != nil {
		b.logger.Err(err).Str("func", "*Bootstrap.EnsureReady").Msg("admin seed failed")
		return fmt.Errorf("admin seed failed: %w", err)
	}

	b.ready = true
	b.logger.Info().Str("func", "*Bootstrap.EnsureReady").Msg("storage ready")

	return nil
}

func (b *Bootstrap) seedAdmin(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing bootstrap admin password: %w", err)
	}

	result, err := b.db.ExecContext(ctx, seedAdmin, bootstrapAdminUsername, string(hash))
	if err != nil {
		return fmt.Errorf("error inserting bootstrap admin: %w", err)
	}

	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 1 {
		b.logger.Info().Str("username", bootstrapAdminUsername).Msg("bootstrap admin account created")
	}

	return nil
}
