package ports

import (
	"context"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

// AdminFilter narrows admin queries. Zero-valued fields do not filter.
type AdminFilter struct {
	ID            string
	Role          domain.Role
	IsActive      *bool
	LoginApproved *bool
}

// ClientFilter narrows client queries. An empty AdminID means no owner filter;
// the scoping resolver is responsible for setting it for non super admins.
type ClientFilter struct {
	ID       string
	AdminID  string
	IsActive *bool
}

// UserFilter narrows user queries.
//
// ClientID filters on a single owning client. When RestrictClients is set,
// only users whose client is in ClientIDs match; an empty ClientIDs then
// matches nothing.
type UserFilter struct {
	ID              string
	ClientID        string
	ClientIDs       []string
	RestrictClients bool
	IsActive        *bool
	LoginApproved   *bool
}

// AdminStore persists admin and super admin accounts.
//
// FindByID, FindOne and List never populate PasswordHash. FindByEmail does, for
// credential checks. Save leaves the stored hash untouched when
// PasswordHash is empty.
type AdminStore interface {
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindOne(ctx context.Context, f AdminFilter) (*domain.Admin, error)
	List(ctx context.Context, f AdminFilter) ([]*domain.Admin, error)
	Count(ctx context.Context, f AdminFilter) (int64, error)
	Create(ctx context.Context, a *domain.Admin) error
	Save(ctx context.Context, a *domain.Admin) error
}

// ClientStore persists client accounts. Same credential rules as AdminStore.
type ClientStore interface {
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindOne(ctx context.Context, f ClientFilter) (*domain.Client, error)
	List(ctx context.Context, f ClientFilter) ([]*domain.Client, error)
	Count(ctx context.Context, f ClientFilter) (int64, error)
	Create(ctx context.Context, c *domain.Client) error
	Save(ctx context.Context, c *domain.Client) error
}

// UserStore persists end-user accounts. Same credential rules as AdminStore.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindOne(ctx context.Context, f UserFilter) (*domain.User, error)
	List(ctx context.Context, f UserFilter) ([]*domain.User, error)
	Count(ctx context.Context, f UserFilter) (int64, error)
	Create(ctx context.Context, u *domain.User) error
	Save(ctx context.Context, u *domain.User) error
}

// Stores groups the three account stores.
type Stores struct {
	Admins  AdminStore
	Clients ClientStore
	Users   UserStore
}

// Bool returns a pointer to b, for the optional filter fields.
func Bool(b bool) *bool { return &b }
