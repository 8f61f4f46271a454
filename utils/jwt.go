package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"sync"
	"time"

	"medibook/config"

	"github.com/golang-jwt/jwt"
)

var (
	secretMu  sync.RWMutex
	secretKey []byte
)

func getSecret() []byte {
	secretMu.RLock()
	key := secretKey
	secretMu.RUnlock()
	if key != nil {
		return key
	}

	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "medibook-dev-secret"
	}
	SetSigningSecret(secret)
	return []byte(secret)
}

// SetSigningSecret overrides the HMAC secret used for every signed token.
func SetSigningSecret(secret string) {
	secretMu.Lock()
	secretKey = []byte(secret)
	secretMu.Unlock()
}

// TokenClaims is the subset of claims the app reads back from an access token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

// GenerateToken creates a signed JWT for the given subject. The token expires after duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"typ":   "access",
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return getSecret(), nil
	})
}

// ExtractClaims validates an access token and returns its claims.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if typ, _ := claims["typ"].(string); typ != "access" {
		return nil, errors.New("not an access token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &TokenClaims{Subject: sub, Email: email, Role: role}, nil
}

// SignState signs an opaque OAuth state value carrying the given fields.
func SignState(fields map[string]string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"typ": "oauth_state",
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	for k, v := range fields {
		claims[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(getSecret())
}

// ParseState verifies a value produced by SignState and returns its string fields.
func ParseState(state string) (map[string]string, error) {
	token, err := ValidateToken(state)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid state")
	}
	if typ, _ := claims["typ"].(string); typ != "oauth_state" {
		return nil, errors.New("not an oauth state")
	}
	out := make(map[string]string, len(claims))
	for k, v := range claims {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out, nil
}
