// Package session implements the Redis-backed session and identity manager.
// All authorization decisions in the application derive from the Identity a
// session token resolves to; an unresolvable token means "not logged in", not
// an error.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"myboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const issuer = "myboard"

// Identity is the resolved, authenticated representation of who is making a
// request. Fields carries the non-credential login-form values submitted at
// login (group, email) so views can render them without a store round-trip.
type Identity struct {
	UserID string            `json:"userid"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Manager owns all session state. Tokens handed to clients are HS256-signed
// and carry only the session id; the identity itself lives in Redis under a
// TTL, so destroying the server-side entry invalidates the token immediately.
type Manager struct {
	redis  *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewManager returns a session manager signing tokens with secret and expiring
// sessions after ttl.
func NewManager(rdb *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{
		redis:  rdb,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

func stagedImageKey(sid string) string {
	return "session:" + sid + ":image"
}

// Start creates a session for the given identity and returns the signed token
// the client presents on subsequent requests.
func (m *Manager) Start(ctx context.Context, ident *Identity) (string, error) {
	if m.redis == nil {
		return "", models.NewInternalError(errors.New("session store unavailable"))
	}

	sid := uuid.NewString()
	payload, err := json.Marshal(ident)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if err := m.redis.Set(ctx, sessionKey(sid), payload, m.ttl).Err(); err != nil {
		return "", models.NewInternalError(err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iss": issuer,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// Current resolves a token to the identity it was started with. It returns
// (nil, nil) when the token is missing, malformed, tampered with, expired, or
// the session was destroyed; only store failures surface as errors.
func (m *Manager) Current(ctx context.Context, token string) (*Identity, error) {
	sid, ok := m.sessionID(token)
	if !ok {
		return nil, nil
	}

	payload, err := m.redis.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var ident Identity
	if err := json.Unmarshal([]byte(payload), &ident); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ident, nil
}

// End destroys the session state behind the token. Ending an already-ended or
// invalid session is a no-op.
func (m *Manager) End(ctx context.Context, token string) error {
	sid, ok := m.sessionID(token)
	if !ok {
		return nil
	}
	if err := m.redis.Del(ctx, sessionKey(sid), stagedImageKey(sid)).Err(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// StageImage records the server-local path of an uploaded image against the
// session, to be consumed by the next post creation. A second upload before
// consumption replaces the staged path.
func (m *Manager) StageImage(ctx context.Context, token, path string) error {
	sid, ok := m.sessionID(token)
	if !ok {
		return models.NewUnauthorizedError("No active session")
	}
	if err := m.redis.Set(ctx, stagedImageKey(sid), path, m.ttl).Err(); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// TakeStagedImage returns the staged image path and removes it, so the staged
// path is consumed exactly once. Returns "" when nothing is staged.
func (m *Manager) TakeStagedImage(ctx context.Context, token string) (string, error) {
	sid, ok := m.sessionID(token)
	if !ok {
		return "", nil
	}
	path, err := m.redis.GetDel(ctx, stagedImageKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return path, nil
}

// sessionID verifies the token signature and extracts the session id.
func (m *Manager) sessionID(token string) (string, bool) {
	if token == "" || m.redis == nil {
		return "", false
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	if iss, issOk := claims["iss"].(string); !issOk || iss != issuer {
		return "", false
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}
