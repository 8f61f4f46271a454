package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
)

const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

// GoogleIdentity is what the app needs from a verified Google ID token.
type GoogleIdentity struct {
	Email         string
	EmailVerified bool
	Name          string
	Nonce         string
}

// IDTokenVerifier checks a Google ID token for the given audience.
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken, audience string) (*GoogleIdentity, error)
}

// GoogleJWKSVerifier verifies ID tokens against Google's published keys,
// caching them for an hour.
type GoogleJWKSVerifier struct {
	HTTPClient *http.Client
	CertsURL   string

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func NewGoogleJWKSVerifier() *GoogleJWKSVerifier {
	return &GoogleJWKSVerifier{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		CertsURL:   googleCertsURL,
	}
}

type googleJWK struct {
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (v *GoogleJWKSVerifier) publicKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	v.mu.RLock()
	if v.keys != nil && time.Now().Before(v.expires) {
		defer v.mu.RUnlock()
		return v.keys, nil
	}
	v.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.CertsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch Google certs: status %d", resp.StatusCode)
	}

	var body struct {
		Keys []googleJWK `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode Google keys: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(body.Keys))
	for _, k := range body.Keys {
		pub, err := jwkToPublicKey(k.N, k.E)
		if err != nil {
			return nil, err
		}
		keys[k.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.expires = time.Now().Add(time.Hour)
	v.mu.Unlock()
	return keys, nil
}

func jwkToPublicKey(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}
	exp := 0
	for _, b := range eb {
		exp = exp<<8 + int(b)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: exp}, nil
}

func (v *GoogleJWKSVerifier) Verify(ctx context.Context, idToken, audience string) (*GoogleIdentity, error) {
	keys, err := v.publicKeys(ctx)
	if err != nil {
		return nil, err
	}

	unverified, _, err := new(jwt.Parser).ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	kid, ok := unverified.Header["kid"].(string)
	if !ok {
		return nil, errors.New("token missing kid header")
	}
	pub, ok := keys[kid]
	if !ok {
		return nil, errors.New("no matching Google public key found")
	}

	token, err := jwt.Parse(idToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return pub, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid Google ID token: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse claims")
	}
	return identityFromClaims(claims, audience)
}

// identityFromClaims checks the audience and issuer of already verified claims.
func identityFromClaims(claims jwt.MapClaims, audience string) (*GoogleIdentity, error) {
	if !claims.VerifyAudience(audience, true) {
		return nil, errors.New("invalid audience in Google ID token")
	}
	iss, _ := claims["iss"].(string)
	if iss != "accounts.google.com" && iss != "https://accounts.google.com" {
		return nil, errors.New("invalid issuer in Google ID token")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.New("email claim not found in Google ID token")
	}
	name, _ := claims["name"].(string)
	nonce, _ := claims["nonce"].(string)
	return &GoogleIdentity{
		Email:         strings.ToLower(email),
		EmailVerified: claimIsTrue(claims["email_verified"]),
		Name:          name,
		Nonce:         nonce,
	}, nil
}

// claimIsTrue accepts both encodings Google has used for boolean claims.
func claimIsTrue(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}
