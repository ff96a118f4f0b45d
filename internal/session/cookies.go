package session

import (
	"net/http"
	"strings"
	"time"
)

// CookieStore is the cookie surface the token store writes through.
// *storage.CookieJar satisfies it.
type CookieStore interface {
	SetCookie(c *http.Cookie)
	Cookie(name string) (string, bool)
}

// CookieOptions controls the attributes of the token cookies.
type CookieOptions struct {
	Domain   string
	Path     string
	SameSite string
	Secure   bool
	MaxAge   time.Duration
}

// DefaultCookieOptions mirrors the dashboard defaults: lax, root path, seven days.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{Path: "/", SameSite: "lax", MaxAge: 7 * 24 * time.Hour}
}

// ParseSameSite maps a config string to http.SameSite, defaulting to lax.
func ParseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (o CookieOptions) build(name, value string, now time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.path(),
		Secure:   o.Secure,
		SameSite: ParseSameSite(o.SameSite),
	}
	if d := strings.TrimSpace(o.Domain); d != "" {
		ck.Domain = d
	}
	if o.MaxAge > 0 {
		ck.Expires = now.Add(o.MaxAge).UTC()
		ck.MaxAge = int(o.MaxAge.Seconds())
	}
	return ck
}

func (o CookieOptions) deletion(name string) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     o.path(),
		Secure:   o.Secure,
		SameSite: ParseSameSite(o.SameSite),
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if d := strings.TrimSpace(o.Domain); d != "" {
		ck.Domain = d
	}
	return ck
}

func (o CookieOptions) path() string {
	if p := strings.TrimSpace(o.Path); p != "" {
		return p
	}
	return "/"
}
