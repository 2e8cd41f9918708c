package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// ClientService is the admin surface over clients and the users beneath them.
type ClientService struct {
	stores   ports.Stores
	hasher   ports.PasswordHasher
	scoper   *Scoper
	cache    ports.OverviewCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewClientService(stores ports.Stores, hasher ports.PasswordHasher, scoper *Scoper, cache ports.OverviewCache, cacheTTL time.Duration, log zerolog.Logger) *ClientService {
	return &ClientService{stores: stores, hasher: hasher, scoper: scoper, cache: cache, cacheTTL: cacheTTL, log: log}
}

// ListClients returns the clients in caller's scope, newest first.
func (s *ClientService) ListClients(ctx context.Context, caller *domain.Principal) ([]*domain.Client, error) {
	f, err := s.scoper.ClientScope(caller)
	if err != nil {
		return nil, err
	}
	clients, err := s.stores.Clients.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// CreateClient provisions a client owned by caller.
func (s *ClientService) CreateClient(ctx context.Context, caller *domain.Principal, input ports.CreateClientInput) (*domain.Client, error) {
	client, err := createClient(ctx, s.stores.Clients, s.hasher, input, caller.ID, caller.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", client.ID).Str("admin_id", caller.ID).Msg("client created")
	return client, nil
}

// UpdateClient applies patch to a client in caller's scope.
func (s *ClientService) UpdateClient(ctx context.Context, caller *domain.Principal, id string, patch ports.ClientPatch) (*domain.Client, error) {
	client, err := s.findScoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	email, changed, err := emailChange(ctx, domain.KindClient, client.ID, patch.Email, clientEmailOwner(s.stores.Clients))
	if err != nil {
		return nil, err
	}
	if changed {
		client.Email = email
	}
	digest, err := credentialChange(s.hasher, patch.Password)
	if err != nil {
		return nil, err
	}
	client.PasswordHash = digest
	if patch.BusinessName != nil {
		client.BusinessName = *patch.BusinessName
	}
	if patch.BusinessType != nil {
		client.BusinessType = *patch.BusinessType
	}
	if patch.ContactNumber != nil {
		client.ContactNumber = *patch.ContactNumber
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}
	client.UpdatedAt = time.Now().UTC()

	if err := s.stores.Clients.Save(ctx, client); err != nil {
		return nil, duplicateOr(domain.KindClient, "save client", err)
	}
	client.PasswordHash = ""
	return client, nil
}

// DeactivateClient soft-deletes a client in caller's scope.
func (s *ClientService) DeactivateClient(ctx context.Context, caller *domain.Principal, id string) error {
	client, err := s.findScoped(ctx, caller, id)
	if err != nil {
		return err
	}
	client.IsActive = false
	client.UpdatedAt = time.Now().UTC()
	if err := s.stores.Clients.Save(ctx, client); err != nil {
		return fmt.Errorf("save client: %w", err)
	}
	s.log.Info().Str("client_id", client.ID).Str("by", caller.ID).Msg("client deactivated")
	return nil
}

func (s *ClientService) findScoped(ctx context.Context, caller *domain.Principal, id string) (*domain.Client, error) {
	f, err := s.scoper.ClientScope(caller)
	if err != nil {
		return nil, err
	}
	f.ID = id
	client, err := s.stores.Clients.FindOne(ctx, f)
	if err != nil {
		return nil, notFoundOr(domain.KindClient, "load client", err)
	}
	return client, nil
}

// ListUsers returns users under the clients in caller's scope.
func (s *ClientService) ListUsers(ctx context.Context, caller *domain.Principal) ([]*domain.User, error) {
	f, err := s.scoper.UserScopeForAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}
	users, err := s.stores.Users.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Overview returns the admin dashboard tallies within caller's scope.
func (s *ClientService) Overview(ctx context.Context, caller *domain.Principal) (*ports.AdminOverview, error) {
	key := "overview:admin:" + caller.ID
	return cachedOverview(ctx, s.cache, s.cacheTTL, key, s.log, func(ctx context.Context) (*ports.AdminOverview, error) {
		cf, err := s.scoper.ClientScope(caller)
		if err != nil {
			return nil, err
		}
		uf, err := s.scoper.UserScopeForAdmin(ctx, caller)
		if err != nil {
			return nil, err
		}

		var o ports.AdminOverview
		if o.TotalClients, err = s.stores.Clients.Count(ctx, cf); err != nil {
			return nil, fmt.Errorf("count clients: %w", err)
		}
		if o.TotalUsers, err = s.stores.Users.Count(ctx, uf); err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		return &o, nil
	})
}
