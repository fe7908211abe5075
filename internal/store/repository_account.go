package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/kjmin/go-board/internal/authz"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/models"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation, lookup, and the
// admin-side mutations (password reset, role change, deletion).
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account record and returns the fully
// populated [models.Account] with server-assigned fields (AccountID,
// CreatedAt).
//
// The INSERT relies on the username uniqueness constraint rather than a
// prior existence check, so a race between two concurrent registrations is
// resolved by the database.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createAccount, account.Username, account.PasswordHash, account.Role)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Account{}, ErrUsernameAlreadyExists
		default:
			return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&account.AccountID, &account.Username, &account.PasswordHash, &account.Role, &account.CreatedAt); err != nil {
		// the constraint violation can also surface at scan time
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Account{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: scanning error")
		return models.Account{}, err
	}

	return account, nil
}

// FindAccountByUsername retrieves the account whose username matches the
// one provided.
//
// Error handling:
//   - sql.ErrNoRows → [ErrAccountNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *accountRepository) FindAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	var found models.Account
	row := r.db.QueryRowContext(ctx, findAccountByUsername, username)

	if err := row.Scan(&found.AccountID, &found.Username, &found.PasswordHash, &found.Role, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.FindAccountByUsername").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindAccountByID retrieves the account with the given identifier.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	var found models.Account
	row := r.db.QueryRowContext(ctx, findAccountByID, accountID)

	if err := row.Scan(&found.AccountID, &found.Username, &found.PasswordHash, &found.Role, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.FindAccountByID").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListAccounts returns all accounts matching the filter, ordered by
// identifier.
func (r *accountRepository) ListAccounts(ctx context.Context, filter AccountFilter) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAccountsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.AccountID, &account.Username, &account.PasswordHash, &account.Role, &account.CreatedAt); err != nil {
			log.Err(err).Str("func", "*accountRepository.ListAccounts").Msg("error scanning account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return accounts, nil
}

// UpdatePassword overwrites the stored credential hash of the account.
func (r *accountRepository) UpdatePassword(ctx context.Context, accountID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateAccountPassword, accountID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePassword").Msg("error updating password hash")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// UpdateRole changes the role of an account inside one transaction with
// the last-admin check.
//
// The target row and every other admin row are locked FOR UPDATE before
// the count is taken, so two concurrent demotions of the two remaining
// admins cannot both observe "one other admin left" and proceed.
//
// Error handling:
//   - missing target account → [ErrAccountNotFound].
//   - demotion of the last admin → [authz.ErrLastAdminProtected].
func (r *accountRepository) UpdateRole(ctx context.Context, accountID int64, newRole models.Role) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateRole").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var currentRole models.Role
	if err := tx.QueryRowContext(ctx, findRoleForUpdate, accountID).Scan(&currentRole); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.UpdateRole").Msg("error locking target account")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	var otherAdmins int
	if err := tx.QueryRowContext(ctx, countOtherAdmins, accountID).Scan(&otherAdmins); err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateRole").Msg("error counting admin accounts")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if authz.LastAdminViolation(currentRole, newRole, otherAdmins) {
		log.Warn().
			Int64("account_id", accountID).
			Str("new_role", string(newRole)).
			Msg("refusing to demote the last admin")
		return authz.ErrLastAdminProtected
	}

	if _, err := tx.ExecContext(ctx, updateAccountRole, accountID, newRole); err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateRole").Msg("error updating role")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// DeleteAccount removes an account inside one transaction with the
// last-admin check; removing the only admin account is refused. Posts
// authored by the account are left in place (ownership is advisory).
func (r *accountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.DeleteAccount").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var currentRole models.Role
	if err := tx.QueryRowContext(ctx, findRoleForUpdate, accountID).Scan(&currentRole); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.DeleteAccount").Msg("error locking target account")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if currentRole == models.RoleAdmin {
		var otherAdmins int
		if err := tx.QueryRowContext(ctx, countOtherAdmins, accountID).Scan(&otherAdmins); err != nil {
			log.Err(err).Str("func", "*accountRepository.DeleteAccount").Msg("error counting admin accounts")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
		if otherAdmins == 0 {
			log.Warn().Int64("account_id", accountID).Msg("refusing to delete the last admin")
			return authz.ErrLastAdminProtected
		}
	}

	if _, err := tx.ExecContext(ctx, deleteAccount, accountID); err != nil {
		log.Err(err).Str("func", "*accountRepository.DeleteAccount").Msg("error deleting account")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
