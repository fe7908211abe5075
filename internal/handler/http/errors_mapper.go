package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/kjmin/go-board/internal/authz"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/service"
	"github.com/kjmin/go-board/internal/store"
)

// Redirect targets of the browser form flow.
const (
	rootPath       = "/"
	loginPath      = "/login"
	registerPath   = "/register"
	adminUsersPath = "/admin/users"
)

// recoverableErrorMessages maps business errors that the form flow recovers
// from to the message carried back to the user. Anything not listed here is
// either a hard denial (403) or an internal failure (500).
var recoverableErrorMessages = map[error]string{
	service.ErrInvalidDataProvided: "missing required fields",
	service.ErrInvalidCredentials:  "invalid username or password",
	service.ErrInvalidRoleProvided: "unknown role",
	store.ErrUsernameAlreadyExists: "username already taken",
	store.ErrAccountNotFound:       "no such account",
	authz.ErrSelfDeletionForbidden: "you cannot delete your own account",
	authz.ErrLastAdminProtected:    "cannot remove the last admin",
}

// redirectWithError answers 303 See Other to location with the message in
// an `error` query parameter. Rendering the message is the page's concern;
// the transport only carries it.
func redirectWithError(w http.ResponseWriter, r *http.Request, location, message string) {
	query := url.Values{}
	query.Set("error", message)
	http.Redirect(w, r, location+"?"+query.Encode(), http.StatusSeeOther)
}

// handleOperationError converts a failed service call into the HTTP
// behaviour the form flow expects: recoverable business errors become a
// 303 redirect back to backTo with an `error` query parameter, a denied
// authorization becomes 403, a missing session becomes a redirect to the
// login page, and everything else is an internal error for this request.
func (h *Handler) handleOperationError(w http.ResponseWriter, r *http.Request, backTo string, err error) {
	log := logger.FromRequest(r)

	switch {
	case errors.Is(err, authz.ErrAuthenticationRequired):
		log.Err(err).Msg("operation requires a session")
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return
	case errors.Is(err, authz.ErrForbidden):
		log.Err(err).Msg("operation forbidden")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	for sentinel, message := range recoverableErrorMessages {
		if errors.Is(err, sentinel) {
			log.Err(err).Str("back_to", backTo).Msg("operation rejected, redirecting back")
			redirectWithError(w, r, backTo, message)
			return
		}
	}

	log.Err(err).Msg("unexpected error during operation")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
