package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/chati-cms/chati/internal/server/repositories/media"
)

func (s *Server) handleListMedia(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	page, limit := pageParams(r)
	result, err := s.media.List(r.Context(), media.Filter{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"media":      result.Items,
		"pagination": newPagination(page, limit, result.Total),
	})
}

// handleUploadMedia accepts a multipart form with a "file" part and an
// optional "alt" field. Size and content type limits live in the service;
// the form parse itself is capped slightly above the upload limit.
func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	claims, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := r.ParseMultipartForm(s.maxUploadSize + 1024); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("No file uploaded"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("No file uploaded"))
		return
	}
	defer file.Close()

	alt := r.FormValue("alt")
	if alt == "" {
		alt = header.Filename
	}

	row, err := s.media.Upload(r.Context(), claims.UserID(),
		header.Header.Get("Content-Type"), alt, header.Size, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"media": row})
}

func (s *Server) handleGetMedia(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	row, err := s.media.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": row})
}

type updateMediaRequest struct {
	Alt string `json:"alt"`
}

func (s *Server) handleUpdateMedia(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req updateMediaRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	row, err := s.media.UpdateAlt(r.Context(), ps.ByName("id"), req.Alt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": row})
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.media.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Media deleted successfully"})
}
