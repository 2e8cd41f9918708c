package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// tree builds root -> {a1, a2}; a1 -> {c1}; a2 -> {c2}; c1 -> {u1}; c2 -> {u2}.
type tree struct {
	root, a1, a2, c1, c2 *domain.Principal
	u1, u2               *domain.User
}

func newTree(t *testing.T, f *fixture) tree {
	t.Helper()
	var tr tree
	tr.root = f.superAdmin(t)
	tr.a1 = f.admin(t, tr.root, "a1@x.com")
	tr.a2 = f.admin(t, tr.root, "a2@x.com")
	tr.c1 = f.client(t, tr.a1, "c1@x.com")
	tr.c2 = f.client(t, tr.a2, "c2@x.com")
	tr.u1 = f.user(t, tr.c1, "", "u1@x.com")
	tr.u2 = f.user(t, tr.c2, "", "u2@x.com")
	return tr
}

func TestScope_ClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := newTree(t, f)

	users, err := f.users.ListUsers(ctx, tr.c1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1@x.com"}, emails(users))

	// A client cannot redirect itself to another client's users.
	users, err = f.users.ListUsers(ctx, tr.c1, tr.c2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1@x.com"}, emails(users))

	_, err = f.users.UpdateUser(ctx, tr.c1, "", tr.u2.ID, ports.UserPatch{Email: ptr("stolen@x.com")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "User not found")

	err = f.users.DeactivateUser(ctx, tr.c1, "", tr.u2.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := f.stores.Users.FindByID(ctx, tr.u2.ID)
	require.NoError(t, err)
	assert.Equal(t, "u2@x.com", stored.Email)
	assert.True(t, stored.IsActive)
}

func TestScope_AdminsSeeOnlyTheirChain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := newTree(t, f)

	clients, err := f.clients.ListClients(ctx, tr.a1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1@x.com"}, emails(clients))

	users, err := f.clients.ListUsers(ctx, tr.a1)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1@x.com"}, emails(users))

	_, err = f.clients.UpdateClient(ctx, tr.a1, tr.c2.ID, ports.ClientPatch{BusinessName: ptr("mine")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Client not found")

	err = f.clients.DeactivateClient(ctx, tr.a1, tr.c2.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Acting on behalf of a client the admin does not own.
	_, err = f.users.ListUsers(ctx, tr.a1, tr.c2.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.users.CreateUser(ctx, tr.a1, tr.c2.ID, ports.CreateUserInput{Email: "x@x.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err = f.users.ListUsers(ctx, tr.a1, tr.c1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1@x.com"}, emails(users))
}

func TestScope_AdminWithoutClientsSeesNoUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := newTree(t, f)
	lonely := f.admin(t, tr.root, "lonely@x.com")

	// Orphan users carry no client id and must not leak through an empty set.
	_, err := f.auth.RegisterUser(ctx, ports.CreateUserInput{Email: "orphan@x.com", Password: "secret1"})
	require.NoError(t, err)

	users, err := f.clients.ListUsers(ctx, lonely)
	require.NoError(t, err)
	assert.Empty(t, users)

	o, err := f.clients.Overview(ctx, lonely)
	require.NoError(t, err)
	assert.Equal(t, ports.AdminOverview{}, *o)
}

func TestScope_SuperAdminSeesEverything(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := newTree(t, f)

	clients, err := f.clients.ListClients(ctx, tr.root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1@x.com", "c2@x.com"}, emails(clients))

	users, err := f.clients.ListUsers(ctx, tr.root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1@x.com", "u2@x.com"}, emails(users))

	users, err = f.users.ListUsers(ctx, tr.root, tr.c2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2@x.com"}, emails(users))

	_, err = f.clients.UpdateClient(ctx, tr.root, tr.c2.ID, ports.ClientPatch{BusinessName: ptr("Renamed")})
	assert.NoError(t, err)
}

func TestScope_TargetClientMustExist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := newTree(t, f)

	for _, target := range []string{"64b7f0c2e13a4d5f6a7b8c9d", "not-an-id"} {
		_, err := f.users.CreateUser(ctx, tr.root, target, ports.CreateUserInput{Email: "orphan@x.com", Password: "secret1"})
		require.ErrorIs(t, err, domain.ErrNotFound, target)
		assert.EqualError(t, err, "Client not found")

		_, err = f.users.ListUsers(ctx, tr.root, target)
		assert.ErrorIs(t, err, domain.ErrNotFound, target)
	}

	_, err := f.stores.Users.FindByEmail(ctx, "orphan@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScope_RolesOutsideTheChain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tr := newTree(t, f)
	userPrincipal := &domain.Principal{ID: tr.u1.ID, Role: domain.RoleUser, Account: tr.u1}

	_, err := f.clients.ListClients(ctx, tr.c1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.users.ListUsers(ctx, userPrincipal, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.clients.ListClients(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = f.users.Profile(ctx, tr.c1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func ptr[T any](v T) *T { return &v }
