package httpapi

import (
	"net/http"

	"github.com/chati-cms/chati/internal/server/models"
)

type registerRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	s.cookies.Attach(w, result.Token)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created and logged in successfully",
		"user":    result.User,
		"token":   result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	s.cookies.Attach(w, result.Token)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Logout clears the cookie and nothing else; the token itself stays valid
// until it expires, there is no server-side revocation list.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	user, err := s.users.CurrentUser(r.Context(), claims.UserID())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
