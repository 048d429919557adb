package providers

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"pingerconf/internal/structures"
)

// GateProviderInterface checks the site-wide shared password.
type GateProviderInterface interface {
	Verify(password string) bool
}

type GateProvider struct {
	password     []byte
	passwordHash []byte
}

func NewGateProvider(conf *structures.Config, logger Logger) GateProviderInterface {
	if conf.Gate.Password == "" && conf.Gate.PasswordHash == "" {
		logger.Warnf(TypeApp, "No site password configured, the gate rejects every attempt")
	}
	return &GateProvider{
		password:     []byte(conf.Gate.Password),
		passwordHash: []byte(conf.Gate.PasswordHash),
	}
}

// Verify prefers the bcrypt hash when one is configured. With nothing
// configured every attempt fails.
func (g *GateProvider) Verify(password string) bool {
	if len(g.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
	}
	if len(g.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(g.password, []byte(password)) == 1
}
