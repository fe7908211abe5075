package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kjmin/go-board/internal/authz"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/store"
	"github.com/kjmin/go-board/models"
)

func newTestAccountService(repo *mockAccountRepository) AccountService {
	return NewAccountService(repo, logger.Nop())
}

func TestAccountService_ListAccounts(t *testing.T) {
	want := []models.Account{
		{AccountID: 1, Username: "admin", Role: models.RoleAdmin},
		{AccountID: 2, Username: "alice", Role: models.RoleUser},
	}
	svc := newTestAccountService(&mockAccountRepository{
		listFn: func(_ context.Context, filter store.AccountFilter) ([]models.Account, error) {
			assert.Empty(t, filter.Role, "listing must not filter by role")
			return want, nil
		},
	})

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, accounts)
}

func TestAccountService_AddAccount(t *testing.T) {
	svc := newTestAccountService(&mockAccountRepository{
		createFn: func(_ context.Context, account models.Account) (models.Account, error) {
			account.AccountID = 5
			return account, nil
		},
	})

	account, err := svc.AddAccount(context.Background(), "bob", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, int64(5), account.AccountID)
	assert.Equal(t, models.RoleUser, account.Role, "admin-created accounts start as plain users")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter2")))
}

func TestAccountService_AddAccount_EmptyFields(t *testing.T) {
	svc := newTestAccountService(&mockAccountRepository{})

	_, err := svc.AddAccount(context.Background(), "", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.AddAccount(context.Background(), "bob", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAccountService_DeleteAccount(t *testing.T) {
	var deletedID int64
	svc := newTestAccountService(&mockAccountRepository{
		deleteFn: func(_ context.Context, accountID int64) error {
			deletedID = accountID
			return nil
		},
	})

	require.NoError(t, svc.DeleteAccount(context.Background(), 9))
	assert.Equal(t, int64(9), deletedID)
}

func TestAccountService_DeleteAccount_LastAdmin(t *testing.T) {
	svc := newTestAccountService(&mockAccountRepository{
		deleteFn: func(_ context.Context, _ int64) error {
			return authz.ErrLastAdminProtected
		},
	})

	err := svc.DeleteAccount(context.Background(), 1)
	assert.ErrorIs(t, err, authz.ErrLastAdminProtected)
}

func TestAccountService_ChangeRole(t *testing.T) {
	var gotID int64
	var gotRole models.Role
	svc := newTestAccountService(&mockAccountRepository{
		updateRoleFn: func(_ context.Context, accountID int64, newRole models.Role) error {
			gotID, gotRole = accountID, newRole
			return nil
		},
	})

	require.NoError(t, svc.ChangeRole(context.Background(), 4, models.RoleAdmin))
	assert.Equal(t, int64(4), gotID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestAccountService_ChangeRole_InvalidRole(t *testing.T) {
	svc := newTestAccountService(&mockAccountRepository{
		updateRoleFn: func(_ context.Context, _ int64, _ models.Role) error {
			t.Fatal("repository must not be called for an unrecognised role")
			return nil
		},
	})

	err := svc.ChangeRole(context.Background(), 4, models.Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRoleProvided)
}

func TestAccountService_ChangeRole_LastAdmin(t *testing.T) {
	svc := newTestAccountService(&mockAccountRepository{
		updateRoleFn: func(_ context.Context, _ int64, _ models.Role) error {
			return authz.ErrLastAdminProtected
		},
	})

	err := svc.ChangeRole(context.Background(), 1, models.RoleUser)
	assert.ErrorIs(t, err, authz.ErrLastAdminProtected)
}

func TestAccountService_ResetPassword(t *testing.T) {
	var storedHash string
	svc := newTestAccountService(&mockAccountRepository{
		updatePasswordFn: func(_ context.Context, accountID int64, passwordHash string) error {
			assert.Equal(t, int64(6), accountID)
			storedHash = passwordHash
			return nil
		},
	})

	require.NoError(t, svc.ResetPassword(context.Background(), 6))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(resetPassword)),
		"reset must set the well-known password")
}

func TestAccountService_ResetPassword_NotFound(t *testing.T) {
	svc := newTestAccountService(&mockAccountRepository{
		updatePasswordFn: func(_ context.Context, _ int64, _ string) error {
			return store.ErrAccountNotFound
		},
	})

	err := svc.ResetPassword(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}
