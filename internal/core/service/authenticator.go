package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// Authenticator resolves bearer tokens to live accounts. It reads the store
// on every call so that deactivation takes effect immediately.
type Authenticator struct {
	tokens *TokenService
	stores ports.Stores
	log    zerolog.Logger
}

func NewAuthenticator(tokens *TokenService, stores ports.Stores, log zerolog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, stores: stores, log: log}
}

// Authenticate runs the gate: token present, token valid, account exists,
// account active. The returned principal carries the role from the token.
func (a *Authenticator) Authenticate(ctx context.Context, rawToken string) (*domain.Principal, error) {
	if rawToken == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := a.tokens.Verify(rawToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	account, err := a.load(ctx, claims.Role, claims.AccountID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !account.Active() {
		a.log.Debug().Str("account_id", account.AccountID()).Str("role", string(claims.Role)).Msg("inactive account rejected")
		return nil, domain.ErrAccountInactive
	}

	return &domain.Principal{
		ID:      account.AccountID(),
		Role:    claims.Role,
		Account: account,
	}, nil
}

// load dispatches on the token role to the store that holds that kind of
// account. Unknown roles resolve to no account.
func (a *Authenticator) load(ctx context.Context, role domain.Role, id string) (domain.Account, error) {
	switch role.Kind() {
	case domain.KindAdmin:
		admin, err := a.stores.Admins.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		admin.Role = role
		return admin, nil
	case domain.KindClient:
		client, err := a.stores.Clients.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return client, nil
	case domain.KindUser:
		user, err := a.stores.Users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return user, nil
	case domain.KindUnknown:
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrNotFound
}
