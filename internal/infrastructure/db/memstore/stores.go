package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// New returns empty in-memory stores.
func New() ports.Stores {
	return ports.Stores{
		Admins:  NewAdminStore(),
		Clients: NewClientStore(),
		Users:   NewUserStore(),
	}
}

// AdminStore implements ports.AdminStore.
type AdminStore struct {
	t table[domain.Admin]
}

func NewAdminStore() *AdminStore {
	return &AdminStore{t: table[domain.Admin]{
		id:      func(a *domain.Admin) *string { return &a.ID },
		email:   func(a *domain.Admin) string { return a.Email },
		hash:    func(a *domain.Admin) *string { return &a.PasswordHash },
		created: func(a *domain.Admin) time.Time { return a.CreatedAt },
	}}
}

func adminMatch(f ports.AdminFilter) func(*domain.Admin) bool {
	return func(a *domain.Admin) bool {
		return (f.ID == "" || a.ID == f.ID) &&
			(f.Role == "" || a.Role == f.Role) &&
			boolMatches(f.IsActive, a.IsActive) &&
			boolMatches(f.LoginApproved, a.LoginApproved)
	}
}

func (s *AdminStore) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	return s.t.get(id)
}

func (s *AdminStore) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	return s.t.byEmail(email)
}

func (s *AdminStore) FindOne(_ context.Context, f ports.AdminFilter) (*domain.Admin, error) {
	return s.t.findOne(adminMatch(f))
}

func (s *AdminStore) List(_ context.Context, f ports.AdminFilter) ([]*domain.Admin, error) {
	return s.t.list(adminMatch(f)), nil
}

func (s *AdminStore) Count(_ context.Context, f ports.AdminFilter) (int64, error) {
	return s.t.count(adminMatch(f)), nil
}

func (s *AdminStore) Create(_ context.Context, a *domain.Admin) error {
	return s.t.insert(a)
}

func (s *AdminStore) Save(_ context.Context, a *domain.Admin) error {
	return s.t.save(a)
}

// ClientStore implements ports.ClientStore.
type ClientStore struct {
	t table[domain.Client]
}

func NewClientStore() *ClientStore {
	return &ClientStore{t: table[domain.Client]{
		id:      func(c *domain.Client) *string { return &c.ID },
		email:   func(c *domain.Client) string { return c.Email },
		hash:    func(c *domain.Client) *string { return &c.PasswordHash },
		created: func(c *domain.Client) time.Time { return c.CreatedAt },
	}}
}

func clientMatch(f ports.ClientFilter) func(*domain.Client) bool {
	return func(c *domain.Client) bool {
		return (f.ID == "" || c.ID == f.ID) &&
			(f.AdminID == "" || c.AdminID == f.AdminID) &&
			boolMatches(f.IsActive, c.IsActive)
	}
}

func (s *ClientStore) FindByID(_ context.Context, id string) (*domain.Client, error) {
	return s.t.get(id)
}

func (s *ClientStore) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	return s.t.byEmail(email)
}

func (s *ClientStore) FindOne(_ context.Context, f ports.ClientFilter) (*domain.Client, error) {
	return s.t.findOne(clientMatch(f))
}

func (s *ClientStore) List(_ context.Context, f ports.ClientFilter) ([]*domain.Client, error) {
	return s.t.list(clientMatch(f)), nil
}

func (s *ClientStore) Count(_ context.Context, f ports.ClientFilter) (int64, error) {
	return s.t.count(clientMatch(f)), nil
}

func (s *ClientStore) Create(_ context.Context, c *domain.Client) error {
	return s.t.insert(c)
}

func (s *ClientStore) Save(_ context.Context, c *domain.Client) error {
	return s.t.save(c)
}

// UserStore implements ports.UserStore.
type UserStore struct {
	t table[domain.User]
}

func NewUserStore() *UserStore {
	return &UserStore{t: table[domain.User]{
		id:      func(u *domain.User) *string { return &u.ID },
		email:   func(u *domain.User) string { return u.Email },
		hash:    func(u *domain.User) *string { return &u.PasswordHash },
		created: func(u *domain.User) time.Time { return u.CreatedAt },
	}}
}

func userMatch(f ports.UserFilter) func(*domain.User) bool {
	return func(u *domain.User) bool {
		if f.RestrictClients && !slices.Contains(f.ClientIDs, u.ClientID) {
			return false
		}
		return (f.ID == "" || u.ID == f.ID) &&
			(f.ClientID == "" || u.ClientID == f.ClientID) &&
			boolMatches(f.IsActive, u.IsActive) &&
			boolMatches(f.LoginApproved, u.LoginApproved)
	}
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	return s.t.get(id)
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.t.byEmail(email)
}

func (s *UserStore) FindOne(_ context.Context, f ports.UserFilter) (*domain.User, error) {
	return s.t.findOne(userMatch(f))
}

func (s *UserStore) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	return s.t.list(userMatch(f)), nil
}

func (s *UserStore) Count(_ context.Context, f ports.UserFilter) (int64, error) {
	return s.t.count(userMatch(f)), nil
}

func (s *UserStore) Create(_ context.Context, u *domain.User) error {
	return s.t.insert(u)
}

func (s *UserStore) Save(_ context.Context, u *domain.User) error {
	return s.t.save(u)
}

// Ping always succeeds; it lets the memory store stand in for readiness checks.
func Ping(context.Context) error { return nil }
