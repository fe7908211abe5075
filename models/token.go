package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the session JWT with convenience accessors for the
// authentication flow.
//
// The claims are the Identity Context snapshot frozen at login time:
// the "sub" claim carries the account id, while Username and Role are
// custom claims. A demoted or promoted account keeps its old role for the
// remainder of an existing session because authorization reads only these
// claims, never the accounts table.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be set in the session cookie.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization; only the compact string form is
	// meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, iss) as defined by RFC 7519.
	jwt.RegisteredClaims

	// Username is the login snapshot taken when the token was issued.
	Username string `json:"username,omitempty"`

	// Role is the role snapshot taken when the token was issued.
	Role Role `json:"role,omitempty"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// AccountID is the owner identifier extracted from the "sub" claim.
	// Internal server-side cache, excluded from JSON serialization.
	AccountID int64 `json:"-"`
}

// Identity converts the token's claim snapshot into an Identity value.
func (t *Token) Identity() Identity {
	return Identity{
		AccountID: t.AccountID,
		Username:  t.Username,
		Role:      t.Role,
	}
}

// GetAccountID extracts the account identifier from the token's "sub"
// (subject) claim, parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetAccountID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting AccountID from token: %w", err)
	}

	accountID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting AccountID from token to int64: %w", err)
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
