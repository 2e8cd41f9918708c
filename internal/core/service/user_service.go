package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// UserService is the client-facing surface over users, plus the profile
// routes a user calls on its own account.
type UserService struct {
	stores   ports.Stores
	hasher   ports.PasswordHasher
	scoper   *Scoper
	cache    ports.OverviewCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewUserService(stores ports.Stores, hasher ports.PasswordHasher, scoper *Scoper, cache ports.OverviewCache, cacheTTL time.Duration, log zerolog.Logger) *UserService {
	return &UserService{stores: stores, hasher: hasher, scoper: scoper, cache: cache, cacheTTL: cacheTTL, log: log}
}

// ListUsers returns the users of the resolved target client, newest first.
func (s *UserService) ListUsers(ctx context.Context, caller *domain.Principal, targetClientID string) ([]*domain.User, error) {
	f, err := s.scoper.UserScopeForClient(ctx, caller, targetClientID)
	if err != nil {
		return nil, err
	}
	users, err := s.stores.Users.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser provisions a user under the resolved target client. Users
// created this way are approved from the start.
func (s *UserService) CreateUser(ctx context.Context, caller *domain.Principal, targetClientID string, input ports.CreateUserInput) (*domain.User, error) {
	f, err := s.scoper.UserScopeForClient(ctx, caller, targetClientID)
	if err != nil {
		return nil, err
	}
	user, err := createUser(ctx, s.stores.Users, s.hasher, input, f.ClientID, caller.ID, domain.InitialApproval(domain.KindUser, caller.Role))
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Str("client_id", f.ClientID).Str("created_by", caller.ID).Msg("user created")
	return user, nil
}

// UpdateUser applies patch to a user of the resolved target client.
func (s *UserService) UpdateUser(ctx context.Context, caller *domain.Principal, targetClientID, id string, patch ports.UserPatch) (*domain.User, error) {
	user, err := s.findScoped(ctx, caller, targetClientID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPatch(ctx, user, patch); err != nil {
		return nil, err
	}
	if err := s.stores.Users.Save(ctx, user); err != nil {
		return nil, duplicateOr(domain.KindUser, "save user", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// DeactivateUser soft-deletes a user of the resolved target client.
func (s *UserService) DeactivateUser(ctx context.Context, caller *domain.Principal, targetClientID, id string) error {
	user, err := s.findScoped(ctx, caller, targetClientID, id)
	if err != nil {
		return err
	}
	user.IsActive = false
	user.UpdatedAt = time.Now().UTC()
	if err := s.stores.Users.Save(ctx, user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Str("by", caller.ID).Msg("user deactivated")
	return nil
}

func (s *UserService) findScoped(ctx context.Context, caller *domain.Principal, targetClientID, id string) (*domain.User, error) {
	f, err := s.scoper.UserScopeForClient(ctx, caller, targetClientID)
	if err != nil {
		return nil, err
	}
	f.ID = id
	user, err := s.stores.Users.FindOne(ctx, f)
	if err != nil {
		return nil, notFoundOr(domain.KindUser, "load user", err)
	}
	return user, nil
}

// Overview counts the active users of the resolved target client.
func (s *UserService) Overview(ctx context.Context, caller *domain.Principal, targetClientID string) (*ports.ClientOverview, error) {
	f, err := s.scoper.UserScopeForClient(ctx, caller, targetClientID)
	if err != nil {
		return nil, err
	}
	f.IsActive = ports.Bool(true)

	return cachedOverview(ctx, s.cache, s.cacheTTL, "overview:client:"+f.ClientID, s.log, func(ctx context.Context) (*ports.ClientOverview, error) {
		n, err := s.stores.Users.Count(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		return &ports.ClientOverview{TotalUsers: n}, nil
	})
}

// Profile returns the caller's own user record.
func (s *UserService) Profile(ctx context.Context, caller *domain.Principal) (*domain.User, error) {
	if caller == nil || caller.Role != domain.RoleUser {
		return nil, domain.ErrInsufficientRole
	}
	user, err := s.stores.Users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, notFoundOr(domain.KindUser, "load user", err)
	}
	return user, nil
}

// UpdateProfile applies patch to the caller's own user record. Only email,
// password and profile fields are accepted.
func (s *UserService) UpdateProfile(ctx context.Context, caller *domain.Principal, patch ports.UserPatch) (*domain.User, error) {
	user, err := s.Profile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := s.applyPatch(ctx, user, patch); err != nil {
		return nil, err
	}
	if err := s.stores.Users.Save(ctx, user); err != nil {
		return nil, duplicateOr(domain.KindUser, "save user", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) applyPatch(ctx context.Context, user *domain.User, patch ports.UserPatch) error {
	email, changed, err := emailChange(ctx, domain.KindUser, user.ID, patch.Email, userEmailOwner(s.stores.Users))
	if err != nil {
		return err
	}
	digest, err := credentialChange(s.hasher, patch.Password)
	if err != nil {
		return err
	}
	profile := user.Profile
	if err := applyProfilePatch(&profile, patch.Profile); err != nil {
		return err
	}

	if changed {
		user.Email = email
	}
	user.PasswordHash = digest
	user.Profile = profile
	user.UpdatedAt = time.Now().UTC()
	return nil
}
