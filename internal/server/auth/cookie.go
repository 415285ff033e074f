package auth

import (
	"net/http"
	"time"
)

// CookieName is the session cookie carrying the auth token.
const CookieName = "auth-token"

// CookieStore binds a token to the browser session. The cookie is bearer
// material only; there is no server-side session table.
type CookieStore struct {
	secure bool
	maxAge time.Duration
}

// NewCookieStore builds a store. secure marks cookies Secure (production);
// maxAge should match or undercut the token's own validity so the cookie is
// never outlived by its token.
func NewCookieStore(secure bool, maxAge time.Duration) *CookieStore {
	return &CookieStore{secure: secure, maxAge: maxAge}
}

// Attach sets the session cookie on the response: http-only, same-site
// strict, scoped to the whole application.
func (c *CookieStore) Attach(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Read extracts the token from the request's cookie jar. Absence is not an
// error; the empty string means no session.
func (c *CookieStore) Read(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Clear removes the session cookie. Clearing an absent cookie is harmless,
// so logout is idempotent.
func (c *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
