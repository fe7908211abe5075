package http

import (
	"net/http"

	"github.com/kjmin/go-board/internal/logger"
)

// register creates a new account from form fields username/password and
// sends the user to the login page. A rejected submission goes back to the
// registration page with the reason in the `error` query parameter.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	registeredAccount, err := h.services.AuthService.Register(ctx, username, password)
	if err != nil {
		h.handleOperationError(w, r, registerPath, err)
		return
	}

	log.Info().
		Int64("id", registeredAccount.AccountID).
		Str("username", registeredAccount.Username).
		Msg("account registered")

	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

// login verifies the submitted credentials and, on success, freezes the
// account's identity snapshot into a signed session token set as a cookie.
// The snapshot is not refreshed until the next login, so a role change made
// while the session lives does not affect it.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	account, err := h.services.AuthService.Verify(ctx, username, password)
	if err != nil {
		h.handleOperationError(w, r, loginPath, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, account)
	if err != nil {
		log.Err(err).Msg("creation of session token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().
		Int64("id", account.AccountID).
		Str("username", account.Username).
		Str("role", string(account.Role)).
		Msg("account logged in")

	http.Redirect(w, r, rootPath, http.StatusSeeOther)
}

// logout clears the session cookie. The token itself stays valid until it
// expires; discarding the cookie is all the stateless session model needs.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, rootPath, http.StatusSeeOther)
}
