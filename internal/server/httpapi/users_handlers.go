package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/chati-cms/chati/internal/server/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.Create(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	user, err := s.users.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type updateUserRequest struct {
	Name     *string            `json:"name"`
	Role     *models.Role       `json:"role"`
	Status   *models.UserStatus `json:"status"`
	Password *string            `json:"password"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.Update(r.Context(), ps.ByName("id"), req.Name, req.Role, req.Status, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.users.Delete(r.Context(), ps.ByName("id"), claims.UserID()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
