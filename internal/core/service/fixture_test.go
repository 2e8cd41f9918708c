package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/crypto"
	"github.com/brahmakosh/admin-backend/internal/infrastructure/db/memstore"
)

const testSecret = "test-secret"

// countingHasher records how often a digest is computed.
type countingHasher struct {
	inner  ports.PasswordHasher
	hashes int
}

func (h *countingHasher) Hash(plain string) (string, error) {
	h.hashes++
	return h.inner.Hash(plain)
}

func (h *countingHasher) Verify(plain, digest string) bool {
	return h.inner.Verify(plain, digest)
}

type fixture struct {
	stores    ports.Stores
	hasher    *countingHasher
	tokens    *TokenService
	authn     *Authenticator
	auth      *AuthService
	admins    *AdminService
	approvals *ApprovalService
	clients   *ClientService
	users     *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stores := memstore.New()
	hasher := &countingHasher{inner: crypto.NewBcryptHasher(bcrypt.MinCost)}
	tokens := NewTokenService(testSecret)
	scoper := NewScoper(stores.Clients)
	log := zerolog.Nop()

	return &fixture{
		stores:    stores,
		hasher:    hasher,
		tokens:    tokens,
		authn:     NewAuthenticator(tokens, stores, log),
		auth:      NewAuthService(stores, hasher, tokens, log),
		admins:    NewAdminService(stores, hasher, nil, time.Minute, log),
		approvals: NewApprovalService(stores, log),
		clients:   NewClientService(stores, hasher, scoper, nil, time.Minute, log),
		users:     NewUserService(stores, hasher, scoper, nil, time.Minute, log),
	}
}

func (f *fixture) superAdmin(t *testing.T) *domain.Principal {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.EnsureSuperAdmin(ctx, "root@example.com", "rootpass"))
	a, err := f.stores.Admins.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	return &domain.Principal{ID: a.ID, Role: domain.RoleSuperAdmin, Account: a}
}

func (f *fixture) admin(t *testing.T, by *domain.Principal, email string) *domain.Principal {
	t.Helper()
	a, err := f.admins.CreateAdmin(context.Background(), by, ports.CreateAdminInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return &domain.Principal{ID: a.ID, Role: domain.RoleAdmin, Account: a}
}

func (f *fixture) client(t *testing.T, by *domain.Principal, email string) *domain.Principal {
	t.Helper()
	c, err := f.clients.CreateClient(context.Background(), by, ports.CreateClientInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return &domain.Principal{ID: c.ID, Role: domain.RoleClient, Account: c}
}

func (f *fixture) user(t *testing.T, by *domain.Principal, targetClientID, email string) *domain.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), by, targetClientID, ports.CreateUserInput{Email: email, Password: "secret1"})
	require.NoError(t, err)
	return u
}

func emails[T interface{ *domain.User | *domain.Client | *domain.Admin }](rows []T) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		switch v := any(r).(type) {
		case *domain.User:
			out = append(out, v.Email)
		case *domain.Client:
			out = append(out, v.Email)
		case *domain.Admin:
			out = append(out, v.Email)
		}
	}
	return out
}
