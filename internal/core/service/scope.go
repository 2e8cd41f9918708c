package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// Scoper computes the ownership-chain filters (admin -> client -> user) that
// every listing and mutation applies. Records outside the chain are simply
// not matched, so lookups through a scoped filter report NotFound.
type Scoper struct {
	clients ports.ClientStore
}

func NewScoper(clients ports.ClientStore) *Scoper {
	return &Scoper{clients: clients}
}

// ClientScope returns the filter for clients visible to caller: all of them
// for the super admin, those with adminId == caller for an admin.
func (s *Scoper) ClientScope(caller *domain.Principal) (ports.ClientFilter, error) {
	if caller == nil {
		return ports.ClientFilter{}, domain.ErrNotAuthenticated
	}
	switch caller.Role {
	case domain.RoleSuperAdmin:
		return ports.ClientFilter{}, nil
	case domain.RoleAdmin:
		return ports.ClientFilter{AdminID: caller.ID}, nil
	}
	return ports.ClientFilter{}, domain.ErrInsufficientRole
}

// UserScopeForAdmin returns the filter for users under the clients visible to
// caller. For an admin this resolves the owned client ids first and then
// restricts users to that set; an admin with no clients sees no users.
func (s *Scoper) UserScopeForAdmin(ctx context.Context, caller *domain.Principal) (ports.UserFilter, error) {
	cf, err := s.ClientScope(caller)
	if err != nil {
		return ports.UserFilter{}, err
	}
	if cf.AdminID == "" {
		return ports.UserFilter{}, nil
	}

	owned, err := s.clients.List(ctx, cf)
	if err != nil {
		return ports.UserFilter{}, fmt.Errorf("resolve owned clients: %w", err)
	}
	ids := make([]string, 0, len(owned))
	for _, c := range owned {
		ids = append(ids, c.ID)
	}
	return ports.UserFilter{ClientIDs: ids, RestrictClients: true}, nil
}

// UserScopeForClient returns the filter used by the client-facing user routes.
//
// A client always sees only its own users; targetClientID is ignored. Admins
// and the super admin act on behalf of targetClientID, falling back to their
// own id when none is given. The target must exist, and an admin may only
// target a client it owns.
func (s *Scoper) UserScopeForClient(ctx context.Context, caller *domain.Principal, targetClientID string) (ports.UserFilter, error) {
	if caller == nil {
		return ports.UserFilter{}, domain.ErrNotAuthenticated
	}
	switch caller.Role {
	case domain.RoleClient:
		return ports.UserFilter{ClientID: caller.ID}, nil
	case domain.RoleSuperAdmin, domain.RoleAdmin:
	default:
		return ports.UserFilter{}, domain.ErrInsufficientRole
	}

	clientID := targetClientID
	if clientID == "" {
		clientID = caller.ID
	}
	if clientID != caller.ID {
		target := ports.ClientFilter{ID: clientID}
		if caller.Role == domain.RoleAdmin {
			target.AdminID = caller.ID
		}
		if _, err := s.clients.FindOne(ctx, target); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ports.UserFilter{}, domain.NotFound(domain.KindClient)
			}
			return ports.UserFilter{}, fmt.Errorf("resolve target client: %w", err)
		}
	}
	return ports.UserFilter{ClientID: clientID}, nil
}
