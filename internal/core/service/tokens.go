package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/globetrotter/trip-planner-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 30 * 24 * time.Hour
)

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID    string
	JTI       string
	ExpiresAt time.Time
}

// TokenManager signs and verifies the two token families. Access and refresh
// tokens use independent secrets and TTLs so a leaked short-lived access token
// never yields a long-lived session.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessTTL returns the configured access-token lifetime.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccessToken signs a short-lived stateless access token for the account.
func (m *TokenManager) IssueAccessToken(userID string) (string, error) {
	return sign(m.accessSecret, userID, m.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the account. Its
// validity additionally requires a match against the fingerprint stored on
// the account, which is what makes it revocable.
func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return sign(m.refreshSecret, userID, m.refreshTTL)
}

// VerifyAccess checks signature and expiry of an access token. Storage is
// never consulted here.
func (m *TokenManager) VerifyAccess(token string) (*TokenClaims, error) {
	return verify(m.accessSecret, token)
}

// VerifyRefresh checks signature and expiry of a refresh token.
func (m *TokenManager) VerifyRefresh(token string) (*TokenClaims, error) {
	return verify(m.refreshSecret, token)
}

func sign(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verify(secret []byte, token string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	out := &TokenClaims{UserID: claims.Subject, JTI: claims.ID}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// randomToken returns a cryptographically random opaque token, used for the
// email verification and password reset flows.
func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// fingerprint is the one-way form in which refresh and reset tokens are
// stored; presented tokens are fingerprinted before comparison so a database
// leak never yields replayable credentials.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
