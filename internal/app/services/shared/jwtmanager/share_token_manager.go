package jwtmanager

import (
	"errors"
	"fmt"
	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// ShareTokenManager signs and verifies the bearer tokens embedded in share
// links. Tokens are HS256 with the share ID as subject; expiry lives in the
// token itself so a leaked link dies on its own even if the Redis snapshot
// outlasts it.
type ShareTokenManager struct {
	log        *zap.Logger
	secret     []byte
	defaultTTL time.Duration
}

func NewShareTokenManager(secret string, defaultTTL time.Duration, log *zap.Logger) (*ShareTokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("SHARE_JWT_SECRET is empty")
	}
	if defaultTTL <= 0 {
		defaultTTL = 72 * time.Hour
	}
	return &ShareTokenManager{
		log:        log,
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}, nil
}

// CreateTokenInput defines input parameters for token creation.
type CreateTokenInput struct {
	ShareID string
	// TTL overrides the default validity window when positive.
	TTL time.Duration
}

// CreateTokenOutput contains the signed token string and its expiry.
type CreateTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

// VerifyTokenInput defines parameters for token verification.
type VerifyTokenInput struct {
	Token string
}

// VerifyTokenOutput contains the decoded share reference.
type VerifyTokenOutput struct {
	ShareID   string
	ExpiresAt time.Time
}

// CreateToken generates a signed JWT with standard claims and the share ID as subject.
func (m *ShareTokenManager) CreateToken(in *CreateTokenInput) (*CreateTokenOutput, error) {
	if in == nil || strings.TrimSpace(in.ShareID) == "" {
		return nil, exceptions.ErrShareGenerateToken(fmt.Errorf("share id is required"))
	}

	ttl := in.TTL
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": in.ShareID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, exceptions.ErrShareGenerateToken(err)
	}
	return &CreateTokenOutput{Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken validates signature and expiry and returns the share reference.
func (m *ShareTokenManager) VerifyToken(in *VerifyTokenInput) (*VerifyTokenOutput, error) {
	if in == nil || strings.TrimSpace(in.Token) == "" {
		return nil, exceptions.ErrShareTokenInvalid(fmt.Errorf("token is required"))
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: %v", constvars.ErrDevShareSigningMethod, t.Header["alg"])
		}
		return m.secret, nil
	}

	parsed, err := jwt.Parse(in.Token, keyFunc)
	if err != nil {
		// An expired link behaves like a dead link, not an auth failure.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, exceptions.ErrShareNotFound(errors.New(constvars.ErrDevShareTokenExpired))
		}
		return nil, exceptions.ErrShareTokenInvalid(err)
	}
	if !parsed.Valid {
		return nil, exceptions.ErrShareTokenInvalid(errors.New(constvars.ErrDevShareTokenInvalid))
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, exceptions.ErrShareTokenInvalid(fmt.Errorf("unexpected claims type"))
	}

	shareID, _ := claims["sub"].(string)
	if shareID == "" {
		return nil, exceptions.ErrShareTokenInvalid(fmt.Errorf("token carries no subject"))
	}

	out := &VerifyTokenOutput{ShareID: shareID}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return out, nil
}
