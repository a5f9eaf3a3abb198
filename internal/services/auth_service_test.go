package services

import (
	"context"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginSuccess(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.SeedAdmin(ctx, "admin", "adminpass"))

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "adminpass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.SeedAdmin(ctx, "admin", "adminpass"))

	cases := map[string]*dto.LoginRequest{
		"wrong password":   {Username: "admin", Password: "nope"},
		"unknown username": {Username: "ghost", Password: "adminpass"},
		"empty payload":    {},
		"missing password": {Username: "admin"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := svc.Login(ctx, req)
			assert.Nil(t, resp)
			assert.Equal(t, ErrInvalidCredentials, err)
		})
	}
}

func TestAuthService_SeedAdminIsIdempotent(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin", "adminpass"))
	first, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, first)

	require.NoError(t, svc.SeedAdmin(ctx, "admin", "changed"))
	second, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
}

func TestAuthService_ConcurrentSeedToleratesConflict(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.SeedAdmin(ctx, "admin", "adminpass")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	user, err := users.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestAuthService_CreateUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "clerk", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "user", user.Role)

	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "clerk", Password: "pw2"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{Username: "", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidUser)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "clerk", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}
