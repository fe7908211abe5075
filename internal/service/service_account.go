package service

import (
	"context"
	"fmt"

	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/store"
	"github.com/kjmin/go-board/models"
)

// resetPassword is the well-known password every admin-reset account
// receives. The affected user is expected to log in with it and has no way
// to recover the previous password.
const resetPassword = "password"

// accountService is the concrete implementation of AccountService. It backs
// the admin account-management surface: listing, creating, deleting accounts
// and changing their roles or passwords.
//
// Authorization is the caller's concern; the service assumes the operation
// has already been allowed for the acting identity. The one rule enforced
// below this layer is last-admin protection, which lives inside the
// repository's transactions (see store.AccountRepository).
type accountService struct {
	accountRepository store.AccountRepository
	logger            *logger.Logger
}

// NewAccountService constructs a new AccountService wired to the given
// AccountRepository.
func NewAccountService(accountRepository store.AccountRepository, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		logger:            logger,
	}
}

// ListAccounts returns all accounts ordered by id.
func (a *accountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	accounts, err := a.accountRepository.ListAccounts(ctx, store.AccountFilter{})
	if err != nil {
		log.Err(err).Msg("account listing ended with error")
		return nil, fmt.Errorf("account listing ended with error: %w", err)
	}

	return accounts, nil
}

// AddAccount creates a new account with the `user` role on behalf of an
// admin. It carries the same validation and hashing rules as
// AuthService.Register; the only difference is who initiates it.
//
// Returns the persisted account or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *accountService) AddAccount(ctx context.Context, username, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid account data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	createdAccount, err := a.accountRepository.CreateAccount(ctx, models.Account{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return createdAccount, nil
}

// DeleteAccount removes the account with the given id. Posts authored by the
// account are left in place; authorship is recorded by username only.
//
// Returns nil on success or:
//   - store.ErrAccountNotFound (wrapped) if no such account exists.
//   - authz.ErrLastAdminProtected (wrapped) if the account is the only
//     remaining admin.
func (a *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	if err := a.accountRepository.DeleteAccount(ctx, accountID); err != nil {
		log.Err(err).Int64("id", accountID).Msg("account deletion ended with error")
		return fmt.Errorf("account deletion ended with error: %w", err)
	}

	log.Info().Int64("id", accountID).Msg("account deleted")
	return nil
}

// ChangeRole sets the stored role of the account with the given id.
//
// The change affects future logins only: sessions issued before the change
// keep the role frozen in their token until re-login.
//
// Returns nil on success or:
//   - ErrInvalidRoleProvided if role is not a recognised role.
//   - store.ErrAccountNotFound (wrapped) if no such account exists.
//   - authz.ErrLastAdminProtected (wrapped) if the change would demote the
//     only remaining admin.
func (a *accountService) ChangeRole(ctx context.Context, accountID int64, role models.Role) error {
	log := logger.FromContext(ctx)

	if !role.Valid() {
		log.Error().Int64("id", accountID).Str("role", string(role)).Msg("invalid role provided")
		return ErrInvalidRoleProvided
	}

	if err := a.accountRepository.UpdateRole(ctx, accountID, role); err != nil {
		log.Err(err).Int64("id", accountID).Str("role", string(role)).Msg("role change ended with error")
		return fmt.Errorf("role change ended with error: %w", err)
	}

	log.Info().Int64("id", accountID).Str("role", string(role)).Msg("role changed")
	return nil
}

// ResetPassword replaces the account's password with the well-known reset
// value. Existing sessions of the account stay valid; only the credential
// needed for the next login changes.
//
// Returns nil on success or store.ErrAccountNotFound (wrapped) if no such
// account exists.
func (a *accountService) ResetPassword(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	passwordHash, err := hashPassword(resetPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.accountRepository.UpdatePassword(ctx, accountID, passwordHash); err != nil {
		log.Err(err).Int64("id", accountID).Msg("password reset ended with error")
		return fmt.Errorf("password reset ended with error: %w", err)
	}

	log.Info().Int64("id", accountID).Msg("password reset")
	return nil
}
