package tokens

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-checked"))
	require.NoError(t, err)
	return token
}

func TestDecodeReadsStandardAndDotNetClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mint(t, jwt.MapClaims{
		claimNameIDURI: "user-1",
		claimEmailURI:  "ops@example.com",
		claimRoleURI:   []interface{}{"Manager", "Auditor"},
		"exp":          exp.Unix(),
	})

	claims, ok := Decode(token)
	require.True(t, ok)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "ops@example.com", claims.Email)
	require.Equal(t, []string{"Manager", "Auditor"}, claims.Roles)
	require.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not-a-token",
		"a.b",
		"a.b.c",
		base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`)) + ".!!!." + "sig",
	}
	for _, in := range inputs {
		claims, ok := Decode(in)
		require.False(t, ok, "input %q", in)
		require.Nil(t, claims)
	}
}

func TestIsExpiredAtHonoursBuffer(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	within := mint(t, jwt.MapClaims{"sub": "u", "exp": now.Add(29 * time.Second).Unix()})
	require.True(t, IsExpiredAt(within, now))

	past := mint(t, jwt.MapClaims{"sub": "u", "exp": now.Add(-time.Minute).Unix()})
	require.True(t, IsExpiredAt(past, now))

	beyond := mint(t, jwt.MapClaims{"sub": "u", "exp": now.Add(31 * time.Second).Unix()})
	require.False(t, IsExpiredAt(beyond, now))

	later := mint(t, jwt.MapClaims{"sub": "u", "exp": now.Add(time.Hour).Unix()})
	require.False(t, IsExpiredAt(later, now))
}

func TestIsExpiredTreatsMalformedAsExpired(t *testing.T) {
	require.True(t, IsExpired("garbage"))
	require.True(t, IsExpired(""))
}

func TestTokenWithoutExpiryIsNotExpired(t *testing.T) {
	token := mint(t, jwt.MapClaims{"sub": "u"})
	require.False(t, IsExpired(token))
	require.True(t, ExpiresAt(token).IsZero())
}
