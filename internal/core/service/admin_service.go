package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// AdminService is the super admin's management surface over admin accounts.
type AdminService struct {
	stores   ports.Stores
	hasher   ports.PasswordHasher
	cache    ports.OverviewCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewAdminService(stores ports.Stores, hasher ports.PasswordHasher, cache ports.OverviewCache, cacheTTL time.Duration, log zerolog.Logger) *AdminService {
	return &AdminService{stores: stores, hasher: hasher, cache: cache, cacheTTL: cacheTTL, log: log}
}

// ListAdmins returns every account with role admin, newest first.
func (s *AdminService) ListAdmins(ctx context.Context) ([]*domain.Admin, error) {
	admins, err := s.stores.Admins.List(ctx, ports.AdminFilter{Role: domain.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// CreateAdmin provisions an admin. Admins created by the super admin are
// approved from the start.
func (s *AdminService) CreateAdmin(ctx context.Context, caller *domain.Principal, input ports.CreateAdminInput) (*domain.Admin, error) {
	admin, err := createAdmin(ctx, s.stores.Admins, s.hasher, input, caller.ID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("admin_id", admin.ID).Str("created_by", caller.ID).Msg("admin created")
	return admin, nil
}

// UpdateAdmin applies patch to an admin. The super admin record is never a
// valid target.
func (s *AdminService) UpdateAdmin(ctx context.Context, id string, patch ports.AdminPatch) (*domain.Admin, error) {
	admin, err := s.findAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	email, changed, err := emailChange(ctx, domain.KindAdmin, admin.ID, patch.Email, adminEmailOwner(s.stores.Admins))
	if err != nil {
		return nil, err
	}
	if changed {
		admin.Email = email
	}
	digest, err := credentialChange(s.hasher, patch.Password)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = digest
	admin.UpdatedAt = time.Now().UTC()

	if err := s.stores.Admins.Save(ctx, admin); err != nil {
		return nil, duplicateOr(domain.KindAdmin, "save admin", err)
	}
	admin.PasswordHash = ""
	return admin, nil
}

// DeactivateAdmin soft-deletes an admin.
func (s *AdminService) DeactivateAdmin(ctx context.Context, id string) error {
	admin, err := s.findAdmin(ctx, id)
	if err != nil {
		return err
	}
	admin.IsActive = false
	admin.UpdatedAt = time.Now().UTC()
	if err := s.stores.Admins.Save(ctx, admin); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	s.log.Info().Str("admin_id", admin.ID).Msg("admin deactivated")
	return nil
}

func (s *AdminService) findAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.stores.Admins.FindOne(ctx, ports.AdminFilter{ID: id, Role: domain.RoleAdmin})
	if err != nil {
		return nil, notFoundOr(domain.KindAdmin, "load admin", err)
	}
	return admin, nil
}

// Overview returns the super admin dashboard tallies. Clients are never
// pending, so pending approvals count admins and users only.
func (s *AdminService) Overview(ctx context.Context) (*ports.SuperAdminOverview, error) {
	return cachedOverview(ctx, s.cache, s.cacheTTL, "overview:super_admin", s.log, func(ctx context.Context) (*ports.SuperAdminOverview, error) {
		var (
			o   ports.SuperAdminOverview
			err error
		)
		if o.TotalAdmins, err = s.stores.Admins.Count(ctx, ports.AdminFilter{Role: domain.RoleAdmin}); err != nil {
			return nil, fmt.Errorf("count admins: %w", err)
		}
		if o.ActiveAdmins, err = s.stores.Admins.Count(ctx, ports.AdminFilter{Role: domain.RoleAdmin, IsActive: ports.Bool(true)}); err != nil {
			return nil, fmt.Errorf("count active admins: %w", err)
		}
		if o.TotalClients, err = s.stores.Clients.Count(ctx, ports.ClientFilter{}); err != nil {
			return nil, fmt.Errorf("count clients: %w", err)
		}
		if o.TotalUsers, err = s.stores.Users.Count(ctx, ports.UserFilter{}); err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		pendingAdmins, err := s.stores.Admins.Count(ctx, ports.AdminFilter{Role: domain.RoleAdmin, LoginApproved: ports.Bool(false)})
		if err != nil {
			return nil, fmt.Errorf("count pending admins: %w", err)
		}
		pendingUsers, err := s.stores.Users.Count(ctx, ports.UserFilter{LoginApproved: ports.Bool(false)})
		if err != nil {
			return nil, fmt.Errorf("count pending users: %w", err)
		}
		o.PendingApprovals = pendingAdmins + pendingUsers
		return &o, nil
	})
}
