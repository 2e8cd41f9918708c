package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brahmakosh/admin-backend/internal/core/domain"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService(testSecret)

	raw, err := svc.Issue("acc-1", domain.RoleClient)
	require.NoError(t, err)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID())
	assert.Equal(t, domain.RoleClient, claims.Role)
	assert.WithinDuration(t, claims.IssuedAt.Add(TokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestTokenService_ExpiresAfterSevenDays(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret)
	svc.now = func() time.Time { return issued }

	raw, err := svc.Issue("acc-1", domain.RoleUser)
	require.NoError(t, err)

	for _, role := range domain.Roles {
		raw, err := svc.Issue("acc-"+string(role), role)
		require.NoError(t, err)

		svc.now = func() time.Time { return issued.Add(TokenTTL + time.Second) }
		_, err = svc.Verify(raw)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "role %s", role)
		svc.now = func() time.Time { return issued }
	}

	svc.now = func() time.Time { return issued.Add(TokenTTL - time.Minute) }
	_, err = svc.Verify(raw)
	assert.NoError(t, err)
}

func TestTokenService_RejectsTampering(t *testing.T) {
	svc := NewTokenService(testSecret)

	other, err := NewTokenService("other-secret").Issue("acc-1", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.Verify(other)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.Verify("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// Same secret, different algorithm.
	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		Role: domain.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := hs512.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// No expiry.
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "acc-1"},
	})
	signed, err = noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenService_IssueRequiresAccount(t *testing.T) {
	_, err := NewTokenService(testSecret).Issue("", domain.RoleUser)
	assert.Error(t, err)
}
