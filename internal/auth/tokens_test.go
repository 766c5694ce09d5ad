package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-token-service-tests"

func newTestService(t *testing.T) (TokenService, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenService(testSecret, client), client
}

func TestIssueAndVerify(t *testing.T) {
	svc, _ := newTestService(t)

	token, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.JTI)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestIssueTwiceYieldsDistinctTokens(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Issue(7)
	require.NoError(t, err)
	second, err := svc.Issue(7)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	a, err := svc.Verify(context.Background(), first)
	require.NoError(t, err)
	b, err := svc.Verify(context.Background(), second)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestRevokeAffectsOnlyThatToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Issue(7)
	require.NoError(t, err)
	second, err := svc.Issue(7)
	require.NoError(t, err)

	claims, err := svc.Verify(ctx, first)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, claims))

	_, err = svc.Verify(ctx, first)
	assert.Error(t, err)

	// The user's other token is untouched.
	_, err = svc.Verify(ctx, second)
	assert.NoError(t, err)
}

func TestVerifyRejectsTampering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "not-a-token")
	assert.Error(t, err)

	// Token signed with another secret
	other := NewTokenService("a-completely-different-secret-value", nil)
	forged, err := other.Issue(42)
	require.NoError(t, err)
	_, err = svc.Verify(ctx, forged)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc, _ := newTestService(t)

	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(99, 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(-time.Hour).Unix(),
		"iat": now.Add(-2 * time.Hour).Unix(),
		"nbf": now.Add(-2 * time.Hour).Unix(),
		"jti": "expired-jti",
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), signed)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongIssuerOrAudience(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Now()

	for name, claims := range map[string]jwt.MapClaims{
		"wrong issuer": {
			"sub": "1", "iss": "someone-else", "aud": tokenAudience,
			"exp": now.Add(time.Hour).Unix(), "iat": now.Unix(), "nbf": now.Unix(),
		},
		"wrong audience": {
			"sub": "1", "iss": tokenIssuer, "aud": "someone-else",
			"exp": now.Add(time.Hour).Unix(), "iat": now.Unix(), "nbf": now.Unix(),
		},
	} {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err, name)
		_, err = svc.Verify(context.Background(), signed)
		assert.Error(t, err, name)
	}
}

func TestRevokeWithoutRedisFails(t *testing.T) {
	svc := NewTokenService(testSecret, nil)

	token, err := svc.Issue(1)
	require.NoError(t, err)
	claims, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)

	assert.Error(t, svc.Revoke(context.Background(), claims))
}

func TestVerifyRejectsTokenWhenRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewTokenService(testSecret, client)
	ctx := context.Background()

	token, err := svc.Issue(5)
	require.NoError(t, err)

	_, err = svc.Verify(ctx, token)
	require.NoError(t, err)

	// With Redis down the revocation status is unknown; verification must
	// reject the token instead of assuming it is still live.
	mr.Close()

	_, err = svc.Verify(ctx, token)
	assert.Error(t, err)
}

func TestDenylistEntryExpiresWithToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewTokenService(testSecret, client)
	ctx := context.Background()

	token, err := svc.Issue(5)
	require.NoError(t, err)
	claims, err := svc.Verify(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, claims))

	ttl := client.TTL(ctx, denylistPrefix+claims.JTI).Val()
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, tokenTTL)
}
