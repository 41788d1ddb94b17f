// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/folio/internal/domain"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/account"
	"github.com/taibuivan/folio/pkg/pointer"
)

// # Contracts & Types

// TokenProvider issues and verifies access tokens. [sec.TokenService] implements it.
type TokenProvider interface {
	Issue(userID int64, username string, roles sec.RoleSet) (string, *sec.AuthClaims, error)
	Verify(tokenString string) (*sec.AuthClaims, error)
}

// Service implements the authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any change to credential checks
// or token handling must be reviewed with the same care as the guard rules.
type Service struct {
	users       domain.UserRepository
	accounts    *account.Service
	hasher      sec.PasswordHasher
	tokens      TokenProvider
	revocations RevocationStore
	logger      *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	users domain.UserRepository,
	accounts *account.Service,
	hasher sec.PasswordHasher,
	tokens TokenProvider,
	revocations RevocationStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:       users,
		accounts:    accounts,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		logger:      logger,
	}
}

// errInvalidCredentials is shared by every login failure that could reveal
// whether an account exists.
func errInvalidCredentials() error {
	return apperr.Unauthorized("Invalid login credentials")
}

// # Authentication Flow

/*
Login validates user credentials and issues an access token.

Description: Looks up the account by username (ignoring case), compares the
password in constant time and rejects deactivated accounts.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Session: Signed token, its claims and the account
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (*Session, error) {

	// ── 1. Account Lookup ─────────────────────────────────────────────────
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errInvalidCredentials()
		}
		return nil, fmt.Errorf("auth_service_login_failed: %w", err)
	}

	// ── 2. Credential Check ───────────────────────────────────────────────
	if !service.hasher.Verify(password, user.PasswordHash) {
		service.logger.WarnContext(context, "login_rejected", slog.Int64("user_id", user.ID), slog.String("reason", "password"))
		return nil, errInvalidCredentials()
	}

	// Checked after the password so the flag is only revealed to the owner.
	if !user.IsActive() {
		service.logger.WarnContext(context, "login_rejected", slog.Int64("user_id", user.ID), slog.String("reason", "inactive"))
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────
	token, claims, err := service.tokens.Issue(user.ID, pointer.Val(user.Username), user.Roles)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_logged_in", slog.Int64("user_id", user.ID), slog.String("token_id", claims.ID))
	return &Session{Token: token, Claims: claims, User: user}, nil
}

/*
Register enrolls a new member through the account service.

Description: Requested roles and the active flag are ignored; self-registered
accounts always start as active USER.

Returns:
  - *domain.User: Created account
  - error: Validation, Conflict or storage errors
*/
func (service *Service) Register(context context.Context, input *domain.User) (*domain.User, error) {
	return service.accounts.Register(context, input)
}

/*
Logout revokes the presented access token.

Description: The revocation lives as long as the token would have, so the
store never grows beyond the tokens still in circulation.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (the verified claims of the caller)

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}

	ttl := constants.DefaultAccessTokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := service.revocations.Revoke(context, claims.ID, ttl); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_logged_out", slog.Int64("user_id", claims.UserID), slog.String("token_id", claims.ID))
	return nil
}

/*
VerifyToken checks the signature, expiry and revocation state of a token, then
reloads the account it names.

Description: The returned claims carry the stored username and roles, so a
deactivated, deleted or demoted account loses its access on the next request
rather than when the token expires.

Returns:
  - *sec.AuthClaims: The verified claims, refreshed from the account
  - error: apperr.Unauthorized for unusable tokens or accounts, wrapped store errors otherwise
*/
func (service *Service) VerifyToken(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	revoked, err := service.revocations.IsRevoked(context, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_verify_failed: %w", err)
	}
	if revoked {
		return nil, apperr.Unauthorized("Token has been revoked")
	}

	user, err := service.users.FindByID(context, claims.UserID)
	if apperr.IsNotFound(err) {
		return nil, apperr.Unauthorized("Account no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_verify_failed: %w", err)
	}
	if !user.IsActive() {
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	current := *claims
	current.Username = pointer.Val(user.Username)
	current.Roles = user.Roles
	return &current, nil
}
