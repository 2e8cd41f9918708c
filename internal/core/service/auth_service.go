package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

const (
	minPasswordLength = 6
	// bcrypt rejects longer input.
	maxPasswordBytes = 72
)

// AuthService implements registration, login and the super admin bootstrap.
type AuthService struct {
	stores ports.Stores
	hasher ports.PasswordHasher
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(stores ports.Stores, hasher ports.PasswordHasher, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{stores: stores, hasher: hasher, tokens: tokens, log: log}
}

// Login verifies credentials against the store for role, then applies the
// active and approval axes before issuing a token.
func (s *AuthService) Login(ctx context.Context, role domain.Role, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrCredentialsRequired
	}

	account, digest, err := s.findCredential(ctx, role, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, digest) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := domain.CanLogin(account); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(account.AccountID(), role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("account_id", account.AccountID()).Str("role", string(role)).Msg("login succeeded")
	return &ports.LoginResult{Token: token, Account: account}, nil
}

func (s *AuthService) findCredential(ctx context.Context, role domain.Role, email string) (domain.Account, string, error) {
	switch role.Kind() {
	case domain.KindAdmin:
		a, err := s.stores.Admins.FindByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		// The admin store holds both roles; each login route only accepts its own.
		if a.Role != role {
			return nil, "", domain.ErrNotFound
		}
		digest := a.PasswordHash
		a.PasswordHash = ""
		return a, digest, nil
	case domain.KindClient:
		c, err := s.stores.Clients.FindByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		digest := c.PasswordHash
		c.PasswordHash = ""
		return c, digest, nil
	case domain.KindUser:
		u, err := s.stores.Users.FindByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		digest := u.PasswordHash
		u.PasswordHash = ""
		return u, digest, nil
	case domain.KindUnknown:
	}
	return nil, "", domain.ErrNotFound
}

// RegisterUser self-registers a user. The account starts pending approval
// and has no owning client.
func (s *AuthService) RegisterUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return createUser(ctx, s.stores.Users, s.hasher, input, "", "", domain.InitialApproval(domain.KindUser, ""))
}

// RegisterClient self-registers a client. Clients never need approval, so
// the account is approved immediately; it has no owning admin until one is
// assigned, and is only visible to the super admin.
func (s *AuthService) RegisterClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	return createClient(ctx, s.stores.Clients, s.hasher, input, "", "")
}

// EnsureSuperAdmin creates the super admin when missing. An existing one is
// reactivated if needed, and its password rehashed when the configured one no
// longer verifies.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		s.log.Warn().Msg("SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD not set, skipping super admin bootstrap")
		return nil
	}

	existing, err := s.stores.Admins.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domain.RoleSuperAdmin {
			return fmt.Errorf("bootstrap super admin: %s is registered as %s", email, existing.Role)
		}
		verified := s.hasher.Verify(password, existing.PasswordHash)
		if verified && existing.IsActive {
			s.log.Info().Str("email", email).Msg("super admin already exists")
			return nil
		}
		if !existing.IsActive {
			s.log.Warn().Str("email", email).Msg("super admin was inactive, reactivating")
		}
		existing.PasswordHash = ""
		if !verified {
			digest, err := s.hasher.Hash(password)
			if err != nil {
				return fmt.Errorf("bootstrap super admin: %w", err)
			}
			existing.PasswordHash = digest
		}
		existing.IsActive = true
		existing.LoginApproved = true
		existing.UpdatedAt = time.Now().UTC()
		if err := s.stores.Admins.Save(ctx, existing); err != nil {
			return fmt.Errorf("bootstrap super admin: %w", err)
		}
		s.log.Info().Str("email", email).Bool("rehashed", !verified).Msg("super admin updated")
		return nil
	case errors.Is(err, domain.ErrNotFound):
	default:
		return fmt.Errorf("bootstrap super admin: %w", err)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	now := time.Now().UTC()
	admin := &domain.Admin{
		Email:         email,
		PasswordHash:  digest,
		Role:          domain.RoleSuperAdmin,
		IsActive:      true,
		LoginApproved: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.stores.Admins.Create(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	s.log.Info().Str("email", email).Msg("super admin created")
	return nil
}
