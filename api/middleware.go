package api

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/fleetworks/fleet-maintenance-api/models"
)

type contextKey string

const userContextKey contextKey = "verified-user"

const defaultClerkAPIBase = "https://api.clerk.dev"

// Auth verifies Clerk bearer tokens and resolves the submitter identity.
// Verified identities are attached to the request context; nothing
// client-supplied is ever trusted for created_by.
type Auth struct {
	Domain    string
	SecretKey string

	// JWKSURL and APIBase may be overridden in tests.
	JWKSURL string
	APIBase string

	HTTPClient *http.Client

	mu   sync.Mutex
	keys map[string]*rsa.PublicKey
}

// NewAuth builds the auth middleware state for a Clerk domain.
func NewAuth(domain, secretKey string) *Auth {
	return &Auth{
		Domain:     domain,
		SecretKey:  secretKey,
		JWKSURL:    fmt.Sprintf("https://%s/.well-known/jwks.json", domain),
		APIBase:    defaultClerkAPIBase,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		keys:       map[string]*rsa.PublicKey{},
	}
}

// Middleware rejects requests without a valid bearer token and stores the
// verified user on the request context for the handler.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := a.VerifyRequest(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL,
				"error", err,
			)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// ContextWithUser attaches a verified user to a context.
func ContextWithUser(ctx context.Context, user models.UserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the verified user stored by the middleware.
func UserFromContext(ctx context.Context) (models.UserInfo, bool) {
	user, ok := ctx.Value(userContextKey).(models.UserInfo)
	return user, ok
}

// VerifyRequest extracts the bearer token, verifies its signature against
// the Clerk JWKS and resolves the subject to a user profile.
func (a *Auth) VerifyRequest(r *http.Request) (models.UserInfo, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return models.UserInfo{}, fmt.Errorf("authorization header required")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return models.UserInfo{}, fmt.Errorf("bearer token required")
	}
	if a.Domain == "" {
		return models.UserInfo{}, fmt.Errorf("identity provider domain is not configured")
	}

	ctx := r.Context()
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key id")
		}
		return a.signingKey(ctx, kid)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to parse token, %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return models.UserInfo{}, fmt.Errorf("token has no subject")
	}

	return a.fetchUser(ctx, sub)
}

// signingKey returns the RSA public key for a key id, fetching the JWKS on
// a cache miss.
func (a *Auth) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	a.mu.Lock()
	if key, ok := a.keys[kid]; ok {
		a.mu.Unlock()
		return key, nil
	}
	a.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.JWKSURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks fetch returned %d", resp.StatusCode)
	}

	var jwks struct {
		Keys []struct {
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("failed to decode jwks: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, k := range jwks.Keys {
		key, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			continue
		}
		a.keys[k.Kid] = key
	}
	if key, ok := a.keys[kid]; ok {
		return key, nil
	}
	return nil, fmt.Errorf("no jwks entry for key id %q", kid)
}

func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}

// fetchUser resolves a subject id to its profile via the Clerk backend API.
func (a *Auth) fetchUser(ctx context.Context, userID string) (models.UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/users/%s", a.APIBase, userID), nil)
	if err != nil {
		return models.UserInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.SecretKey)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.UserInfo{}, fmt.Errorf("user profile fetch returned %d: %s", resp.StatusCode, body)
	}

	var profile struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return models.UserInfo{}, fmt.Errorf("failed to decode user profile: %w", err)
	}

	email := ""
	if len(profile.EmailAddresses) > 0 {
		email = profile.EmailAddresses[0].EmailAddress
	}
	fullName := strings.TrimSpace(strings.TrimSpace(profile.FirstName) + " " + strings.TrimSpace(profile.LastName))

	return models.UserInfo{UserID: userID, Email: email, FullName: fullName}, nil
}
