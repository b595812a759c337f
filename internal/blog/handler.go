package blog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/unilanding/cms-backend/internal/transport"
)

type ServiceAPI interface {
	Upsert(dto UpsertComponentDTO) (*Component, error)
	GetBySlug(slug string) (*Component, error)
	List(limit, offset int) (*ComponentsResponse, error)
	Update(slug string, dto UpdateComponentDTO) (*Component, error)
	Delete(slug string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) UpsertComponent(w http.ResponseWriter, r *http.Request) {
	var dto UpsertComponentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	component, err := h.Service.Upsert(dto)
	if err != nil {
		h.Logger.Error("blog upsert failed", "slug", dto.Slug, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, component)
}

func (h *Handler) GetComponent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	component, err := h.Service.GetBySlug(slug)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, component)
}

func (h *Handler) ListComponents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	response, err := h.Service.List(limit, offset)
	if err != nil {
		h.Logger.Error("blog list failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var dto UpdateComponentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	component, err := h.Service.Update(slug, dto)
	if err != nil {
		h.Logger.Error("blog update failed", "slug", slug, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, component)
}

func (h *Handler) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := h.Service.Delete(slug); err != nil {
		h.Logger.Error("blog delete failed", "slug", slug, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
