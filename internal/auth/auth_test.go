package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketsim/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService(testSecret)
	user := &models.User{UserID: "u-1", Role: models.RoleTester}

	resp, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.Expiration, time.Minute)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleTester, claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signer := NewService(testSecret)
	verifier := NewService("another-secret-value-of-32-bytes")

	resp, err := signer.GenerateToken(&models.User{UserID: "u-1", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(resp.Token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService(testSecret)
	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}
