package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/autoescuela/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://project.supabase.co/auth/v1"

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: testIssuer,
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(testIssuer))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("https://other.supabase.co/auth/v1")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience: []string{"authenticated"},
		},
	}

	t.Run("contains match", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience([]string{"authenticated"}))
	})

	t.Run("no match", func(t *testing.T) {
		err := c.ValidateAudience([]string{"service_role"})
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("empty expected list", func(t *testing.T) {
		require.NoError(t, c.ValidateAudience(nil))
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("leeway absorbs skew", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second)),
			},
		}
		require.NoError(t, claims.ValidateExpiryWithLeeway(30*time.Second))
		require.ErrorIs(t, claims.ValidateExpiryWithLeeway(time.Second), jwtx.ErrExpired)
	})
}

func TestHS256RoundTrip(t *testing.T) {
	secret := []byte("super-secret-jwt-token-with-at-least-32-characters")
	v, err := jwtx.NewHS256Verifier(secret, jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: []string{"authenticated"},
	})
	require.NoError(t, err)

	userID := "6f1c7a9e-3f7b-4c7e-9d0b-3c2f1a9b8e7d"
	claims := jwtx.NewAccessClaims(userID, "ana@example.com", time.Hour,
		testIssuer, []string{"authenticated"}, time.Now())

	t.Run("valid token", func(t *testing.T) {
		raw, err := jwtx.SignHS256(secret, claims)
		require.NoError(t, err)

		got, err := v.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, userID, got.Subject)
		require.Equal(t, "ana@example.com", got.Email)
		require.Equal(t, jwtx.RoleAuthenticated, got.Role)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := jwtx.SignHS256([]byte("another-secret"), claims)
		require.NoError(t, err)

		_, err = v.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("expired", func(t *testing.T) {
		old := jwtx.NewAccessClaims(userID, "ana@example.com", time.Minute,
			testIssuer, []string{"authenticated"}, time.Now().Add(-time.Hour))
		raw, err := jwtx.SignHS256(secret, old)
		require.NoError(t, err)

		_, err = v.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("missing subject", func(t *testing.T) {
		anon := jwtx.NewAccessClaims("", "", time.Hour, testIssuer, []string{"authenticated"}, time.Now())
		raw, err := jwtx.SignHS256(secret, anon)
		require.NoError(t, err)

		_, err = v.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("wrong algorithm rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
		raw, err := tok.SignedString(secret)
		require.NoError(t, err)

		_, err = v.Verify(raw)
		require.Error(t, err)
	})
}

func TestNewHS256VerifierRequiresSecret(t *testing.T) {
	_, err := jwtx.NewHS256Verifier(nil, jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrNoSecret)
}
