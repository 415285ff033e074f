package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chati-cms/chati/internal/server/models"
)

// Denial is a ready-to-return error result produced by the gate. Handlers
// forward it unchanged; they never see why a token was rejected.
type Denial struct {
	Status  int
	Message string
}

// Write renders the denial as the API's standard error body.
func (d *Denial) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(d.Status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": d.Message})
}

// Gate resolves the current caller from a request and enforces
// authentication and role requirements before a handler runs. It is built
// from the token verifier and the cookie store; it keeps no per-request
// state and does no ambient lookups — the request is always an explicit
// argument.
type Gate struct {
	secret  []byte
	cookies *CookieStore
}

func NewGate(secret []byte, cookies *CookieStore) *Gate {
	return &Gate{secret: secret, cookies: cookies}
}

// RequireAuth reads the session cookie and verifies its token. On success it
// yields the caller's claims; on any failure (no cookie, malformed, bad
// signature, expired) it yields a 401 denial.
func (g *Gate) RequireAuth(r *http.Request) (*Claims, *Denial) {
	token := g.cookies.Read(r)
	if token == "" {
		return nil, &Denial{Status: http.StatusUnauthorized, Message: "Authentication required"}
	}

	claims, err := ParseToken(token, g.secret)
	if err != nil {
		return nil, &Denial{Status: http.StatusUnauthorized, Message: "Authentication required"}
	}

	return claims, nil
}

// RequireRole applies RequireAuth and then checks the resolved role against
// the allow-list. An authentication failure propagates untouched; a role
// mismatch yields a 403 denial naming the required roles. The list is taken
// literally: no role implies another, ADMIN included.
func (g *Gate) RequireRole(r *http.Request, allowedRoles ...models.Role) (*Claims, *Denial) {
	claims, denial := g.RequireAuth(r)
	if denial != nil {
		return nil, denial
	}

	for _, role := range allowedRoles {
		if claims.Role == role {
			return claims, nil
		}
	}

	names := make([]string, len(allowedRoles))
	for i, role := range allowedRoles {
		names[i] = string(role)
	}

	return nil, &Denial{
		Status:  http.StatusForbidden,
		Message: "Access denied. Required roles: " + strings.Join(names, ", "),
	}
}
