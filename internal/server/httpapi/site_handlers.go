package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/chati-cms/chati/internal/server/services"
)

func (s *Server) handleGetNavigation(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("key query parameter is required (header or footer)"))
		return
	}

	nav, err := s.site.GetNavigation(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"navigation": nav})
}

type navigationRequest struct {
	Key   string          `json:"key"`
	Items json.RawMessage `json:"items"`
}

func (s *Server) handleUpdateNavigation(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req navigationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	nav, err := s.site.UpdateNavigation(r.Context(), req.Key, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"navigation": nav})
}

// handleGetTheme returns the default theme, or every theme with ?all=true.
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	if r.URL.Query().Get("all") == "true" {
		themes, err := s.site.ListThemes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"themes": themes})
		return
	}

	theme, err := s.site.GetDefaultTheme(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"theme": theme})
}

func (s *Server) handleCreateTheme(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var in services.ThemeInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	theme, err := s.site.CreateTheme(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Theme created successfully",
		"theme":   theme,
	})
}

type updateThemeRequest struct {
	ID string `json:"id"`
	services.ThemeInput
}

func (s *Server) handleUpdateTheme(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, adminOnly...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req updateThemeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}

	theme, err := s.site.UpdateTheme(r.Context(), req.ID, &req.ThemeInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"theme": theme})
}
