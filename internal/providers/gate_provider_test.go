package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pingerconf/internal/structures"
)

func gateConfig(password, hash string) *structures.Config {
	return &structures.Config{Gate: structures.GateConfig{Password: password, PasswordHash: hash}}
}

func TestGateProvider_PlainPassword(t *testing.T) {
	g := NewGateProvider(gateConfig("open sesame", ""), &cacheTestLogger{})

	assert.True(t, g.Verify("open sesame"))
	assert.False(t, g.Verify("open sesame "))
	assert.False(t, g.Verify(""))
}

func TestGateProvider_BcryptHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed secret"), bcrypt.MinCost)
	require.NoError(t, err)

	g := NewGateProvider(gateConfig("plain secret", string(hash)), &cacheTestLogger{})

	assert.True(t, g.Verify("hashed secret"))
	assert.False(t, g.Verify("plain secret"))
}

func TestGateProvider_NothingConfigured(t *testing.T) {
	g := NewGateProvider(gateConfig("", ""), &cacheTestLogger{})

	assert.False(t, g.Verify(""))
	assert.False(t, g.Verify("anything"))
}
