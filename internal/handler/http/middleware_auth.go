package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/utils"
	"github.com/kjmin/go-board/models"
)

// sessionCookieName is the cookie carrying the signed identity-snapshot
// token between requests.
const sessionCookieName = "session"

// auth is an HTTP middleware that enforces session authentication.
//
// It extracts the session token from the "session" cookie or, failing that,
// from a bearer "Authorization" header, validates it via
// [service.AuthService.ParseToken], and — on success — stores the identity
// snapshot frozen in the token's claims in the request context under
// [utils.IdentityCtxKey] before delegating to the next handler.
//
// Requests without a usable session are not failed with a status code: the
// browser flow expects to land on the login page, so the middleware answers
// 303 See Other to /login. This covers an absent token, a malformed header,
// and an expired or otherwise invalid token alike.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getSessionToken(r)
		if err != nil {
			log.Err(err).Msg("request carries no usable session token")
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}

		// Store the identity snapshot in the context so that downstream
		// handlers can retrieve it without re-parsing the token. The role
		// in the snapshot is the one frozen at login, deliberately not
		// refreshed against storage.
		ctx = context.WithValue(ctx, utils.IdentityCtxKey, token.Identity())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getSessionToken extracts the raw session token from the request.
//
// The "session" cookie is the primary carrier; a bearer "Authorization"
// header is accepted as a fallback so that non-browser clients can drive
// the same routes.
func getSessionToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if cookie.Value == "" {
			return "", ErrEmptyToken
		}
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoSessionToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}
	if parts[1] == "" {
		return "", ErrEmptyToken
	}

	return parts[1], nil
}

// identityFromRequest retrieves the identity snapshot placed in the context
// by the auth middleware. Routes mounted behind the middleware always have
// one; a missing identity means the route was wired outside the session
// group and is reported as an internal error by callers.
func identityFromRequest(r *http.Request) (models.Identity, bool) {
	return utils.GetIdentityFromContext(r.Context())
}
