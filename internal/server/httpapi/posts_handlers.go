package httpapi

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/repositories/posts"
	"github.com/chati-cms/chati/internal/server/services"
)

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	page, limit := pageParams(r)
	result, err := s.posts.List(r.Context(), posts.Filter{
		Status:     r.URL.Query().Get("status"),
		CategoryID: r.URL.Query().Get("categoryId"),
		Search:     r.URL.Query().Get("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"posts":      result.Posts,
		"pagination": newPagination(page, limit, result.Total),
	})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	claims, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var in services.PostInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	post, err := s.posts.Create(r.Context(), claims.UserID(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"post": post})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	post, err := s.posts.Get(r.Context(), ps.ByName("id"))
	if errors.Is(err, common.ErrNotFound) {
		post, err = s.posts.GetBySlug(r.Context(), ps.ByName("id"))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var in services.PostInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	post, err := s.posts.Update(r.Context(), ps.ByName("id"), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.posts.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func (s *Server) handlePublishPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, publishers...)
	if denial != nil {
		denial.Write(w)
		return
	}

	post, err := s.posts.Publish(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

func (s *Server) handleUnpublishPost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, publishers...)
	if denial != nil {
		denial.Write(w)
		return
	}

	post, err := s.posts.Unpublish(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}
