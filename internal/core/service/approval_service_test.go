package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

func TestApprovalService_ApproveReject(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.superAdmin(t)
	admin := f.admin(t, root, "a@x.com")

	acc, err := f.approvals.Reject(ctx, "admin", admin.ID)
	require.NoError(t, err)
	assert.False(t, acc.Approved())

	_, err = f.auth.Login(ctx, domain.RoleAdmin, "a@x.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrLoginNotApproved)

	acc, err = f.approvals.Approve(ctx, "admin", admin.ID)
	require.NoError(t, err)
	assert.True(t, acc.Approved())

	_, err = f.auth.Login(ctx, domain.RoleAdmin, "a@x.com", "secret1")
	assert.NoError(t, err)
}

func TestApprovalService_SuperAdminImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.superAdmin(t)

	before, err := f.stores.Admins.FindByID(ctx, root.ID)
	require.NoError(t, err)

	for _, op := range []func(context.Context, string, string) (domain.Account, error){f.approvals.Approve, f.approvals.Reject} {
		_, err := op(ctx, "admin", root.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
		assert.ErrorIs(t, err, domain.ErrSuperAdminImmutable)
	}

	after, err := f.stores.Admins.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApprovalService_InvalidTargets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	root := f.superAdmin(t)
	admin := f.admin(t, root, "a@x.com")
	client := f.client(t, admin, "c@x.com")

	_, err := f.approvals.Reject(ctx, "client", client.ID)
	assert.ErrorIs(t, err, domain.ErrClientNoApproval)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)

	_, err = f.approvals.Approve(ctx, "robot", client.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidAccountType)

	_, err = f.approvals.Approve(ctx, "user", "64b000000000000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "User not found")

	stored, err := f.stores.Clients.FindByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, stored.LoginApproved)
}

func TestApprovalService_PendingNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.stores.Users.Create(ctx, &domain.User{Email: "old@x.com", IsActive: true, CreatedAt: base}))
	require.NoError(t, f.stores.Admins.Create(ctx, &domain.Admin{Email: "mid@x.com", Role: domain.RoleAdmin, IsActive: true, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, f.stores.Users.Create(ctx, &domain.User{Email: "new@x.com", IsActive: true, CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, f.stores.Users.Create(ctx, &domain.User{Email: "ok@x.com", IsActive: true, LoginApproved: true, CreatedAt: base}))
	require.NoError(t, f.stores.Admins.Create(ctx, &domain.Admin{Email: "root@x.com", Role: domain.RoleSuperAdmin, IsActive: true, CreatedAt: base}))

	pending, err := f.approvals.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	assert.Equal(t, domain.KindUser, pending[0].Type)
	assert.Equal(t, domain.KindAdmin, pending[1].Type)
	assert.Equal(t, domain.KindUser, pending[2].Type)

	o, err := f.admins.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, ports.SuperAdminOverview{
		TotalAdmins:      1,
		ActiveAdmins:     1,
		TotalClients:     0,
		TotalUsers:       3,
		PendingApprovals: 3,
	}, *o)
}
