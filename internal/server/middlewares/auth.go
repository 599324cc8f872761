package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	subjectKey = "auth_subject"
	issuer     = "infra-validator"
)

// Authenticator validates HS256 bearer tokens signed with a shared secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate returns the subject of a valid token.
func (a *Authenticator) Authenticate(token string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())

	claims := &jwt.RegisteredClaims{}
	t, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to authenticate token: %w", err)
	}
	if !t.Valid {
		return "", errors.New("failed to parse or validate token")
	}
	return claims.Subject, nil
}

// Sign issues a token for subject valid for ttl.
func (a *Authenticator) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Auth rejects requests without a valid "Authorization: Bearer <token>"
// header. The token subject is stored in the gin context.
func Auth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		subject, err := a.Authenticate(token)
		if err != nil {
			zap.S().Named("http").Warnw("authentication failed", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// Subject returns the authenticated subject of the request, if any.
func Subject(c *gin.Context) string {
	return c.GetString(subjectKey)
}
