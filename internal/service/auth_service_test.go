package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-inventory-ledger/internal/core/auth"
	"go-inventory-ledger/internal/domain"
	"go-inventory-ledger/internal/testutil"
	"go-inventory-ledger/pkg/utils"
)

func newAuthFixture() (*AuthService, *testutil.MemUserRepo, *auth.JWTer) {
	users := testutil.NewMemUserRepo()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 24 * time.Hour}
	return NewAuthService(users, jwter), users, jwter
}

func TestSignup_CreatesPendingUser(t *testing.T) {
	svc, users, _ := newAuthFixture()

	err := svc.Signup(context.Background(), "Al", "al@x.com", "pw", domain.RoleSalesman)
	require.NoError(t, err)

	u, err := users.FindByEmail("al@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.StatusPending, u.Status)
	assert.Equal(t, domain.RoleSalesman, u.Role)
	assert.NotEqual(t, "pw", u.PasswordHash)
	assert.True(t, utils.CheckPassword("pw", u.PasswordHash))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	require.NoError(t, svc.Signup(context.Background(), "Al", "al@x.com", "pw", domain.RoleSalesman))
	err := svc.Signup(context.Background(), "Al2", "al@x.com", "pw2", domain.RoleManager)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSignup_InvalidInput(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Signup(ctx, "", "a@x.com", "pw", domain.RoleAdmin), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Signup(ctx, "A", "a@x.com", "", domain.RoleAdmin), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Signup(ctx, "A", "a@x.com", "pw", "SuperUser"), domain.ErrInvalidInput)
}

func TestLogin_PendingUserRejected(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, "Al", "al@x.com", "pw", domain.RoleSalesman))

	_, err := svc.Login(ctx, "al@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrNotActive)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, "Al", "al@x.com", "pw", domain.RoleSalesman))
	u, _ := users.FindByEmail("al@x.com")
	_, err := users.UpdateByID(u.ID, domain.UserUpdate{Status: domain.StatusActive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "al@x.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, err := svc.Login(context.Background(), "ghost@x.com", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_Success_TokenEmbedsRole(t *testing.T) {
	svc, users, jwter := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, "Al", "al@x.com", "pw", domain.RoleSalesman))
	u, _ := users.FindByEmail("al@x.com")
	// 审批时改派为 Manager，token 角色应取审批后的
	_, err := users.UpdateByID(u.ID, domain.UserUpdate{Status: domain.StatusActive, Role: domain.RoleManager})
	require.NoError(t, err)

	tok, err := svc.Login(ctx, "al@x.com", "pw")
	require.NoError(t, err)

	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestProfile(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, "Al", "al@x.com", "pw", domain.RoleSalesman))
	u, _ := users.FindByEmail("al@x.com")

	p, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Al", p.Name)
	assert.Equal(t, "al@x.com", p.Email)
	assert.Equal(t, domain.RoleSalesman, p.Role)

	_, err = svc.Profile(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
