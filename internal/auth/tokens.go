// Package auth implements bearer token issuance, verification, and revocation.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pustaka/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenIssuer   = "pustaka-api"
	tokenAudience = "pustaka-client"
	tokenTTL      = 7 * 24 * time.Hour

	denylistPrefix = "denylist:"
)

// Claims carries the verified identity of a bearer token.
type Claims struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

// TokenService issues opaque bearer credentials bound to a single user.
// Revoking a token affects only that token; other tokens issued to the same
// user remain valid.
type TokenService interface {
	Issue(userID uint) (string, error)
	Verify(ctx context.Context, token string) (*Claims, error)
	Revoke(ctx context.Context, claims *Claims) error
}

// jwtTokenService signs HS256 JWTs and tracks revoked token IDs in Redis.
// A denylist entry lives exactly as long as the token it cancels.
type jwtTokenService struct {
	secret []byte
	redis  *redis.Client
}

// NewTokenService returns a TokenService backed by the given signing secret
// and Redis client. The client may be nil; verification then skips the
// revocation check and Revoke fails.
func NewTokenService(secret string, rdb *redis.Client) TokenService {
	return &jwtTokenService{secret: []byte(secret), redis: rdb}
}

func (s *jwtTokenService) Issue(userID uint) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *jwtTokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return nil, models.NewUnauthorizedError("Invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return nil, models.NewUnauthorizedError("Invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid user ID in token")
	}

	jti, _ := claims["jti"].(string)
	var expiresAt time.Time
	if exp, expOk := claims["exp"].(float64); expOk {
		expiresAt = time.Unix(int64(exp), 0)
	}

	// The denylist check fails closed: if Redis cannot answer, the token is
	// rejected rather than risking acceptance of a revoked credential.
	if jti != "" && s.redis != nil {
		revoked, err := s.redis.Exists(ctx, denylistPrefix+jti).Result()
		if err != nil {
			return nil, models.NewUnauthorizedError("Token verification unavailable")
		}
		if revoked > 0 {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
	}

	return &Claims{
		UserID:    uint(userID),
		JTI:       jti,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *jwtTokenService) Revoke(ctx context.Context, claims *Claims) error {
	if s.redis == nil {
		return fmt.Errorf("token revocation unavailable: no Redis backend")
	}
	if claims == nil || claims.JTI == "" {
		return fmt.Errorf("token has no revocable ID")
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		// Already expired; nothing to deny.
		return nil
	}

	return s.redis.Set(ctx, denylistPrefix+claims.JTI, "1", ttl).Err()
}

// generateJTI creates a unique token ID so individual tokens can be revoked.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
