package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kjmin/go-board/internal/authz"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/utils"
	"github.com/kjmin/go-board/models"
)

// requireAdminDecision runs the authorization engine for an account
// management operation on behalf of the session identity. It writes the
// denial response itself and reports whether the caller may proceed.
func (h *Handler) requireAdminDecision(w http.ResponseWriter, r *http.Request, op authz.Operation, target authz.Target) (models.Identity, bool) {
	log := logger.FromRequest(r)

	identity, ok := identityFromRequest(r)
	if !ok {
		log.Error().Msg("identity missing from request context")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return models.Identity{}, false
	}

	decision := authz.Decide(&identity, op, target)
	if !decision.Allowed {
		h.handleOperationError(w, r, adminUsersPath, decision.Reason)
		return models.Identity{}, false
	}

	return identity, true
}

// listAccounts answers the admin user-management page data: every account
// as JSON, ordered by id.
func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if _, ok := h.requireAdminDecision(w, r, authz.OpListAccounts, authz.Target{}); !ok {
		return
	}

	accounts, err := h.services.AccountService.ListAccounts(ctx)
	if err != nil {
		log.Err(err).Msg("error occurred during account listing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if _, err := utils.WriteJSON(w, accounts, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing accounts to response")
	}
}

// addAccount creates a new user-role account from form fields
// username/password on behalf of an admin.
func (h *Handler) addAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if _, ok := h.requireAdminDecision(w, r, authz.OpCreateAccount, authz.Target{}); !ok {
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	account, err := h.services.AccountService.AddAccount(ctx, username, password)
	if err != nil {
		h.handleOperationError(w, r, adminUsersPath, err)
		return
	}

	log.Info().Int64("id", account.AccountID).Str("username", account.Username).Msg("account added by admin")

	http.Redirect(w, r, adminUsersPath, http.StatusSeeOther)
}

// deleteAccount removes the account named in the URL. Deleting yourself is
// always denied; deleting the last admin is denied inside the storage
// transaction. Posts authored by the account stay on the board.
func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := h.accountIDFromURL(w, r)
	if !ok {
		return
	}

	if _, ok := h.requireAdminDecision(w, r, authz.OpDeleteAccount, authz.Target{AccountID: accountID}); !ok {
		return
	}

	if err := h.services.AccountService.DeleteAccount(ctx, accountID); err != nil {
		h.handleOperationError(w, r, adminUsersPath, err)
		return
	}

	http.Redirect(w, r, adminUsersPath, http.StatusSeeOther)
}

// resetPassword replaces the password of the account named in the URL with
// the well-known reset value.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := h.accountIDFromURL(w, r)
	if !ok {
		return
	}

	if _, ok := h.requireAdminDecision(w, r, authz.OpResetPassword, authz.Target{AccountID: accountID}); !ok {
		return
	}

	if err := h.services.AccountService.ResetPassword(ctx, accountID); err != nil {
		h.handleOperationError(w, r, adminUsersPath, err)
		return
	}

	http.Redirect(w, r, adminUsersPath, http.StatusSeeOther)
}

// changeRole sets the role of the account named in the URL from the form
// field role. The change binds at the target's next login; live sessions
// keep the snapshot they were issued with.
func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := h.accountIDFromURL(w, r)
	if !ok {
		return
	}

	if _, ok := h.requireAdminDecision(w, r, authz.OpChangeRole, authz.Target{AccountID: accountID}); !ok {
		return
	}

	role := models.Role(r.PostFormValue("role"))

	if err := h.services.AccountService.ChangeRole(ctx, accountID, role); err != nil {
		h.handleOperationError(w, r, adminUsersPath, err)
		return
	}

	http.Redirect(w, r, adminUsersPath, http.StatusSeeOther)
}

// accountIDFromURL parses the {id} URL parameter, answering 404 for a
// non-numeric value the router let through.
func (h *Handler) accountIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	log := logger.FromRequest(r)

	accountID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Str("id", chi.URLParam(r, "id")).Msg("non-numeric account id")
		http.NotFound(w, r)
		return 0, false
	}

	return accountID, true
}
