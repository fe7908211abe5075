package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kjmin/go-board/internal/config"
	"github.com/kjmin/go-board/internal/logger"
	"github.com/kjmin/go-board/internal/store"
	"github.com/kjmin/go-board/internal/utils"
	"github.com/kjmin/go-board/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, and JWT session
// token lifecycle using an AccountRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// accountRepository is the data-access layer used to create and look up accounts.
	accountRepository store.AccountRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// AccountRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(accountRepository store.AccountRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		accountRepository: accountRepository,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// Register creates a new account with the `user` role.
//
// It validates that both username and password are non-empty, hashes the
// password with bcrypt, and delegates persistence to the AccountRepository.
// The role of a freshly registered account is always models.RoleUser; roles
// are only ever raised afterwards through AccountService.ChangeRole.
//
// Returns the persisted account (with a server-assigned AccountID) or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, username, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid registration data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredAccount, err := a.accountRepository.CreateAccount(ctx, models.Account{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	})
	if err != nil {
		log.Err(err).Str("username", username).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return registeredAccount, nil
}

// Verify authenticates an existing account.
//
// It looks up the account by username and compares the supplied password
// against the stored bcrypt hash. Both an unknown username and a wrong
// password produce the same ErrInvalidCredentials, so callers cannot tell
// which of the two failed.
//
// Returns the authenticated account record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - ErrInvalidCredentials if the account does not exist or the password
//     does not match.
//   - A wrapped storage error for any other repository failure.
func (a *authService) Verify(ctx context.Context, username, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	foundAccount, err := a.accountRepository.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Error().Str("username", username).Msg("login attempt for unknown username")
			return models.Account{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("account search by username failed")
		return models.Account{}, fmt.Errorf("account search by username failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundAccount.PasswordHash), []byte(password)); err != nil {
		log.Error().
			Int64("id", foundAccount.AccountID).
			Str("username", foundAccount.Username).
			Msg("wrong password")
		return models.Account{}, ErrInvalidCredentials
	}

	return foundAccount, nil
}

// CreateToken issues a signed JWT session token for the given account.
//
// The token freezes the account's id, username and role as they are at this
// moment; later role changes do not touch already-issued tokens. It is signed
// with the configured tokenSignKey, carries the configured tokenIssuer as the
// "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateSessionToken(a.tokenIssuer, account.Identity(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseSessionToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
//
// Returns the decoded token model on success or ErrTokenIsExpiredOrInvalid on
// any validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// hashPassword hashes a plain-text password with bcrypt at the default cost.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
