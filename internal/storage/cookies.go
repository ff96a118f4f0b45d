package storage

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
)

// CookieJar exposes named cookie reads and writes for a single origin on top of an
// http.CookieJar, so the same jar can be attached to an http.Client talking to the
// dashboard edge.
//
// Domain, path, expiry and Secure are honoured by the jar: a Secure cookie is not
// returned for an http:// origin.
type CookieJar struct {
	jar    http.CookieJar
	origin *url.URL
	mu     sync.Mutex
}

// NewCookieJar creates an empty jar scoped to origin (for example "http://localhost:3000").
func NewCookieJar(origin string) (*CookieJar, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, errors.New("storage: cookie origin is required")
	}
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("storage: parse cookie origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("storage: cookie origin %q must be absolute", origin)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &CookieJar{jar: jar, origin: u}, nil
}

// Jar returns the underlying http.CookieJar.
func (j *CookieJar) Jar() http.CookieJar {
	return j.jar
}

// Origin returns the URL cookies are scoped to.
func (j *CookieJar) Origin() *url.URL {
	cpy := *j.origin
	return &cpy
}

// SetCookie stores c for the origin. A cookie with MaxAge < 0 deletes any existing cookie of that name.
func (j *CookieJar) SetCookie(c *http.Cookie) {
	if j == nil || c == nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(j.origin, []*http.Cookie{c})
}

// Cookie returns the value of the named cookie as the origin would see it.
func (j *CookieJar) Cookie(name string) (string, bool) {
	if j == nil {
		return "", false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range j.jar.Cookies(j.origin) {
		if c.Name == name {
			return c.Value, c.Value != ""
		}
	}
	return "", false
}
