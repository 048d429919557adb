package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pingerconf/internal/structures"
)

type contextKey string

const ContextUserID contextKey = "userID"

var ErrNoToken = errors.New("no session token")

// SessionClaims is the session token handed over by the identity provider.
// DiscordID is preferred over the subject when both are present.
type SessionClaims struct {
	DiscordID string `json:"discordId,omitempty"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) UserID() string {
	if c.DiscordID != "" {
		return c.DiscordID
	}
	return c.Subject
}

type AuthProviderInterface interface {
	Authenticate(next http.Handler) http.Handler
	Verify(token string) (string, error)
}

type AuthProvider struct {
	secret     []byte
	cookieName string
	logger     Logger
}

func NewAuthProvider(conf *structures.Config, logger Logger) AuthProviderInterface {
	cookie := conf.Auth.CookieName
	if cookie == "" {
		cookie = "session"
	}
	return &AuthProvider{
		secret:     []byte(conf.Auth.Secret),
		cookieName: cookie,
		logger:     logger,
	}
}

// Verify checks an HS256 session token and returns the user id it names.
func (a *AuthProvider) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	id := claims.UserID()
	if id == "" {
		return "", fmt.Errorf("%w: no subject", jwt.ErrTokenRequiredClaimMissing)
	}
	return id, nil
}

func (a *AuthProvider) extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

func (a *AuthProvider) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.Verify(a.extractToken(r))
		if err != nil {
			a.logger.Debugf(GetLogTypeByRequestType(r.Method), "Rejected session for %s: %s", r.URL.Path, err)
			WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing session")
			return
		}
		ctx := context.WithValue(r.Context(), ContextUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ContextUserID).(string)
	return id, ok && id != ""
}
