// Package tokens decodes bearer tokens on the client side. Nothing here verifies a
// signature: the decoded claims only drive expiry prediction, never trust decisions.
package tokens

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiryBuffer is subtracted from a token's lifetime so a request is never raced
// against a token that is about to expire in flight.
const ExpiryBuffer = 30 * time.Second

const (
	claimEmail     = "email"
	claimRole      = "role"
	claimEmailURI  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimNameIDURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimRoleURI   = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// Claims is the subset of token claims the client reads.
type Claims struct {
	Subject   string
	Email     string
	Roles     []string
	ExpiresAt time.Time
	Raw       jwt.MapClaims
}

// HasExpiry reports whether the token carried an exp claim.
func (c *Claims) HasExpiry() bool {
	return c != nil && !c.ExpiresAt.IsZero()
}

var parser = jwt.NewParser()

// Decode performs a best-effort decode of the token's claim segment.
// It returns false for anything that is not a well-formed JWT and never panics.
func Decode(token string) (claims *Claims, ok bool) {
	defer func() {
		if recover() != nil {
			claims, ok = nil, false
		}
	}()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, false
	}

	raw := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, raw); err != nil {
		return nil, false
	}

	out := &Claims{Raw: raw}

	if sub, err := raw.GetSubject(); err == nil && sub != "" {
		out.Subject = sub
	} else {
		out.Subject = stringClaim(raw, claimNameIDURI)
	}

	out.Email = stringClaim(raw, claimEmail)
	if out.Email == "" {
		out.Email = stringClaim(raw, claimEmailURI)
	}

	out.Roles = append(listClaim(raw, claimRole), listClaim(raw, claimRoleURI)...)

	exp, err := raw.GetExpirationTime()
	if err != nil {
		return nil, false
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, true
}

// IsExpired reports whether token should be treated as expired right now.
func IsExpired(token string) bool {
	return IsExpiredAt(token, time.Now())
}

// IsExpiredAt reports whether token is expired, or will be within ExpiryBuffer of now.
// A token that cannot be decoded is expired. A token without an exp claim is not.
func IsExpiredAt(token string, now time.Time) bool {
	claims, ok := Decode(token)
	if !ok {
		return true
	}
	if !claims.HasExpiry() {
		return false
	}
	return claims.ExpiresAt.Before(now.Add(ExpiryBuffer))
}

// ExpiresAt returns the token expiry, or the zero time when unknown.
func ExpiresAt(token string) time.Time {
	claims, ok := Decode(token)
	if !ok {
		return time.Time{}
	}
	return claims.ExpiresAt
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func listClaim(claims jwt.MapClaims, key string) []string {
	switch v := claims[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
