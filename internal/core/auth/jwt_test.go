package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-inventory-ledger/internal/domain"
)

func newTestJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: ttl}
}

func TestIssueParse_RoundTrip(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("u-1", domain.RoleSalesman)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UID)
	assert.Equal(t, domain.RoleSalesman, claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("u-1", domain.RoleAdmin)
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "test", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_WrongIssuer(t *testing.T) {
	j := newTestJWTer(time.Hour)
	tok, err := j.Issue("u-1", domain.RoleAdmin)
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	// TTL 为负直接落在 leeway 之外
	j := newTestJWTer(-5 * time.Minute)
	tok, err := j.Issue("u-1", domain.RoleManager)
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	j := newTestJWTer(time.Hour)
	_, err := j.Parse("not-a-token")
	assert.Error(t, err)
}
