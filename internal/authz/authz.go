// Package authz is the authorization engine of the board. It is pure
// decision logic: given the acting identity snapshot, an intended operation,
// and its target, it returns an Allow or Deny decision. It performs no I/O
// of its own.
//
// Decisions are based on the role captured in the identity snapshot at
// login time, never on a fresh lookup. An account demoted mid-session keeps
// its elevated rights until it logs in again; this staleness is intended
// behavior, not an oversight.
package authz

import (
	"errors"

	"github.com/kjmin/go-board/models"
)

// Operation identifies an action submitted to the engine for a decision.
type Operation string

const (
	OpListPosts  Operation = "list-posts"
	OpCreatePost Operation = "create-post"
	OpDeletePost Operation = "delete-post"

	OpRegister Operation = "register"
	OpLogin    Operation = "login"

	OpListAccounts  Operation = "list-accounts"
	OpCreateAccount Operation = "create-account"
	OpDeleteAccount Operation = "delete-account"
	OpChangeRole    Operation = "change-role"
	OpResetPassword Operation = "reset-password"
)

// Deny reasons carried by a Decision. Callers match them with errors.Is.
var (
	// ErrAuthenticationRequired is returned when an operation needs a
	// session but no identity was presented.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrForbidden is returned when the acting identity's role or
	// ownership does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrSelfDeletionForbidden is returned when an identity attempts to
	// delete the account it is currently authenticated as.
	ErrSelfDeletionForbidden = errors.New("self-deletion forbidden")

	// ErrLastAdminProtected is returned when a mutation would leave the
	// system with zero admin accounts.
	ErrLastAdminProtected = errors.New("last admin protected")
)

// Target carries the operation's subject. Only the fields relevant to the
// operation need to be set.
type Target struct {
	// PostAuthor is the author username of the post being deleted.
	PostAuthor string

	// AccountID is the account being deleted, demoted, or reset.
	AccountID int64
}

// Decision is the engine's verdict. Reason is nil when Allowed is true and
// one of the package's deny sentinels otherwise.
type Decision struct {
	Allowed bool
	Reason  error
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason error) Decision {
	return Decision{Reason: reason}
}

// accountManagement reports whether op is one of the admin-only account
// management operations.
func accountManagement(op Operation) bool {
	switch op {
	case OpListAccounts, OpCreateAccount, OpDeleteAccount, OpChangeRole, OpResetPassword:
		return true
	}
	return false
}

// Decide evaluates the authorization rules in order; the first matching
// rule wins.
//
// A nil identity means the request carries no session. Reading the board,
// registering, and logging in are open to everyone; every other operation
// is denied with ErrAuthenticationRequired.
//
// The last-admin rule is not evaluated here: its admin count has to be
// taken inside the same storage transaction as the prospective write, so
// the store calls LastAdminViolation with the transactional count instead.
func Decide(identity *models.Identity, op Operation, target Target) Decision {
	// rule 1: no session
	if identity == nil {
		switch op {
		case OpListPosts, OpRegister, OpLogin:
			return allow()
		}
		return deny(ErrAuthenticationRequired)
	}

	// rule 2: post deletion is owner-or-admin
	if op == OpDeletePost {
		if identity.IsAdmin() {
			return allow()
		}
		if identity.Username == target.PostAuthor {
			return allow()
		}
		return deny(ErrForbidden)
	}

	// rule 3: account management is admin-only
	if accountManagement(op) && !identity.IsAdmin() {
		return deny(ErrForbidden)
	}

	// rule 4: an admin may not delete the account it is logged in as
	if op == OpDeleteAccount && target.AccountID == identity.AccountID {
		return deny(ErrSelfDeletionForbidden)
	}

	// rule 6
	return allow()
}

// LastAdminViolation reports whether changing an account's role from
// currentRole to newRole would leave the system without any admin account.
// otherAdmins is the number of admin accounts excluding the one being
// changed; callers must take this count inside the same transaction as the
// role write to close the race between two concurrent demotions.
func LastAdminViolation(currentRole, newRole models.Role, otherAdmins int) bool {
	return currentRole == models.RoleAdmin && newRole != models.RoleAdmin && otherAdmins == 0
}
