package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// ApprovalService moves admins and users between pending and approved.
// Clients are exempt and the super admin can never be targeted.
type ApprovalService struct {
	stores ports.Stores
	log    zerolog.Logger
}

func NewApprovalService(stores ports.Stores, log zerolog.Logger) *ApprovalService {
	return &ApprovalService{stores: stores, log: log}
}

// Approve moves the account to approved.
func (s *ApprovalService) Approve(ctx context.Context, accountType, id string) (domain.Account, error) {
	return s.transition(ctx, accountType, id, true)
}

// Reject revokes approval. The account is kept, only its login is gated.
func (s *ApprovalService) Reject(ctx context.Context, accountType, id string) (domain.Account, error) {
	return s.transition(ctx, accountType, id, false)
}

func (s *ApprovalService) transition(ctx context.Context, accountType, id string, approved bool) (domain.Account, error) {
	kind := domain.ParseAccountKind(accountType)
	if err := domain.ApprovalTarget(kind); err != nil {
		return nil, err
	}

	var account domain.Account
	switch kind {
	case domain.KindAdmin:
		admin, err := s.stores.Admins.FindByID(ctx, id)
		if err != nil {
			return nil, notFoundOr(domain.KindAdmin, "load admin", err)
		}
		if admin.Role == domain.RoleSuperAdmin {
			return nil, domain.ErrSuperAdminImmutable
		}
		admin.LoginApproved = approved
		admin.UpdatedAt = time.Now().UTC()
		if err := s.stores.Admins.Save(ctx, admin); err != nil {
			return nil, fmt.Errorf("save admin: %w", err)
		}
		account = admin
	case domain.KindUser:
		user, err := s.stores.Users.FindByID(ctx, id)
		if err != nil {
			return nil, notFoundOr(domain.KindUser, "load user", err)
		}
		user.LoginApproved = approved
		user.UpdatedAt = time.Now().UTC()
		if err := s.stores.Users.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
		account = user
	default:
		return nil, domain.ErrInvalidAccountType
	}

	s.log.Info().
		Str("type", kind.String()).
		Str("account_id", id).
		Bool("approved", approved).
		Msg("login approval changed")
	return account, nil
}

// Pending lists admins and users awaiting approval, newest first.
func (s *ApprovalService) Pending(ctx context.Context) ([]ports.PendingApproval, error) {
	admins, err := s.stores.Admins.List(ctx, ports.AdminFilter{Role: domain.RoleAdmin, LoginApproved: ports.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("list pending admins: %w", err)
	}
	users, err := s.stores.Users.List(ctx, ports.UserFilter{LoginApproved: ports.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}

	type entry struct {
		ports.PendingApproval
		createdAt time.Time
	}
	entries := make([]entry, 0, len(admins)+len(users))
	for _, a := range admins {
		entries = append(entries, entry{ports.PendingApproval{Type: domain.KindAdmin, Account: a}, a.CreatedAt})
	}
	for _, u := range users {
		entries = append(entries, entry{ports.PendingApproval{Type: domain.KindUser, Account: u}, u.CreatedAt})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].createdAt.After(entries[j].createdAt)
	})

	out := make([]ports.PendingApproval, len(entries))
	for i, e := range entries {
		out[i] = e.PendingApproval
	}
	return out, nil
}

func notFoundOr(kind domain.AccountKind, op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(kind)
	}
	return fmt.Errorf("%s: %w", op, err)
}
