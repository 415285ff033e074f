package httpapi

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/models"
	"github.com/chati-cms/chati/internal/server/repositories/pages"
	"github.com/chati-cms/chati/internal/server/services"
)

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	result, err := s.pages.List(r.Context(), pages.Filter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": result})
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var in services.PageInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	page, err := s.pages.Create(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"page": page})
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	page, err := s.pages.Get(r.Context(), ps.ByName("id"))
	if errors.Is(err, common.ErrNotFound) {
		// admin screens link pages by slug as well as by id
		page, err = s.pages.GetBySlug(r.Context(), ps.ByName("id"))
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page})
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var in services.PageInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	page, err := s.pages.Update(r.Context(), ps.ByName("id"), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page})
}

func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.pages.Delete(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Page deleted successfully"})
}

func (s *Server) handlePublishPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, publishers...)
	if denial != nil {
		denial.Write(w)
		return
	}

	page, err := s.pages.Publish(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page})
}

func (s *Server) handleUnpublishPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, publishers...)
	if denial != nil {
		denial.Write(w)
		return
	}

	page, err := s.pages.Unpublish(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"page": page})
}

// --- sections ---

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	pageID := r.URL.Query().Get("pageId")
	if pageID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("pageId query parameter is required"))
		return
	}

	page, err := s.pages.Get(r.Context(), pageID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": page.Sections})
}

type createSectionRequest struct {
	PageID string `json:"pageId"`
	services.SectionInput
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	var req createSectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.PageID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("pageId is required"))
		return
	}

	section, err := s.pages.AddSection(r.Context(), req.PageID, &req.SectionInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"section": section})
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireAuth(r)
	if denial != nil {
		denial.Write(w)
		return
	}

	section, err := s.pages.Section(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"section": section})
}

type reorderRequest struct {
	Sections []models.SectionOrder `json:"sections"`
}

// handleUpdateSection also dispatches the batch reorder endpoint: the
// router cannot register /api/sections/reorder next to /api/sections/:id
// for the same method.
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if ps.ByName("id") == "reorder" {
		s.reorderSections(w, r)
		return
	}

	var in services.SectionUpdate
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}

	section, err := s.pages.UpdateSection(r.Context(), ps.ByName("id"), &in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"section": section})
}

func (s *Server) reorderSections(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Sections) == 0 {
		writeError(w, common.ErrValidation)
		return
	}

	if err := s.pages.ReorderSections(r.Context(), req.Sections); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sections reordered successfully"})
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	_, denial := s.gate.RequireRole(r, contentWriters...)
	if denial != nil {
		denial.Write(w)
		return
	}

	if err := s.pages.DeleteSection(r.Context(), ps.ByName("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Section deleted successfully"})
}
