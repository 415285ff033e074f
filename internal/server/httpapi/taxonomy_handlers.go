package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type categoryRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	categories, err := s.taxonomy.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := s.taxonomy.CreateCategory(r.Context(), req.Slug, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	category, err := s.taxonomy.UpdateCategory(r.Context(), ps.ByName("id"), req.Slug, req.Title, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"category": category})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.taxonomy.DeleteCategory(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

type tagRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	tags, err := s.taxonomy.ListTags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req tagRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := s.taxonomy.CreateTag(r.Context(), req.Slug, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"tag": tag})
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req tagRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tag, err := s.taxonomy.UpdateTag(r.Context(), ps.ByName("id"), req.Slug, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tag": tag})
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.taxonomy.DeleteTag(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tag deleted successfully"})
}
