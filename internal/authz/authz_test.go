package authz

import (
	"testing"

	"github.com/kjmin/go-board/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.Identity{AccountID: 2, Username: "alice", Role: models.RoleUser}
	bob   = models.Identity{AccountID: 3, Username: "bob", Role: models.RoleUser}
	admin = models.Identity{AccountID: 1, Username: "admin", Role: models.RoleAdmin}
)

func TestDecide_NoIdentity(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		allowed bool
	}{
		{"list posts is open", OpListPosts, true},
		{"register is open", OpRegister, true},
		{"login is open", OpLogin, true},
		{"create post needs a session", OpCreatePost, false},
		{"delete post needs a session", OpDeletePost, false},
		{"list accounts needs a session", OpListAccounts, false},
		{"change role needs a session", OpChangeRole, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(nil, tt.op, Target{})
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.ErrorIs(t, d.Reason, ErrAuthenticationRequired)
			}
		})
	}
}

func TestDecide_DeletePost_OwnerAllowed(t *testing.T) {
	d := Decide(&alice, OpDeletePost, Target{PostAuthor: "alice"})
	require.True(t, d.Allowed)
	assert.NoError(t, d.Reason)
}

func TestDecide_DeletePost_NonOwnerForbidden(t *testing.T) {
	d := Decide(&bob, OpDeletePost, Target{PostAuthor: "alice"})
	require.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, ErrForbidden)
}

func TestDecide_DeletePost_AdminDeletesAnyPost(t *testing.T) {
	for _, author := range []string{"alice", "bob", "admin", "ghost"} {
		d := Decide(&admin, OpDeletePost, Target{PostAuthor: author})
		assert.True(t, d.Allowed, "admin should delete post by %q", author)
	}
}

func TestDecide_AccountManagement_AdminOnly(t *testing.T) {
	ops := []Operation{OpListAccounts, OpCreateAccount, OpDeleteAccount, OpChangeRole, OpResetPassword}

	for _, op := range ops {
		d := Decide(&alice, op, Target{AccountID: bob.AccountID})
		assert.False(t, d.Allowed, "user should not pass %s", op)
		assert.ErrorIs(t, d.Reason, ErrForbidden)
	}

	d := Decide(&admin, OpListAccounts, Target{})
	assert.True(t, d.Allowed)
}

func TestDecide_SelfDeletionForbidden(t *testing.T) {
	d := Decide(&admin, OpDeleteAccount, Target{AccountID: admin.AccountID})
	require.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, ErrSelfDeletionForbidden)
}

func TestDecide_AdminDeletesOtherAccount(t *testing.T) {
	d := Decide(&admin, OpDeleteAccount, Target{AccountID: alice.AccountID})
	assert.True(t, d.Allowed)
}

// Role decisions use the snapshot taken at login, not the stored role: a
// demoted admin keeps admin rights for the rest of the session.
func TestDecide_StaleRoleSnapshotHonored(t *testing.T) {
	staleAdmin := models.Identity{AccountID: 9, Username: "carol", Role: models.RoleAdmin}

	d := Decide(&staleAdmin, OpListAccounts, Target{})
	assert.True(t, d.Allowed)
}

func TestLastAdminViolation(t *testing.T) {
	tests := []struct {
		name        string
		current     models.Role
		next        models.Role
		otherAdmins int
		want        bool
	}{
		{"demoting the only admin", models.RoleAdmin, models.RoleUser, 0, true},
		{"demoting one of two admins", models.RoleAdmin, models.RoleUser, 1, false},
		{"promoting a user", models.RoleUser, models.RoleAdmin, 0, false},
		{"re-asserting admin role", models.RoleAdmin, models.RoleAdmin, 0, false},
		{"user staying user", models.RoleUser, models.RoleUser, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastAdminViolation(tt.current, tt.next, tt.otherAdmins))
		})
	}
}
