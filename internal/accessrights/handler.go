package accessrights

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/unilanding/cms-backend/internal/transport"
)

type ServiceAPI interface {
	GetOne(idOrCode, moduleName string) (*Grant, error)
	GetAll(idOrCode string) ([]Grant, error)
	UpdateOne(idOrCode, moduleName string, dto UpdateAccessRightDTO) ([]Grant, error)
	RevokeAll(idOrCode string) ([]Grant, error)
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

// GetPermissions returns either the full grant set for a user, or the single
// row for one module when the "module" query parameter is present.
func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	moduleName := r.URL.Query().Get("module")

	if moduleName != "" {
		grant, err := h.Service.GetOne(userID, moduleName)
		if err != nil {
			h.Logger.Error("GetPermissions: service error", "error", err, "user", userID, "module", moduleName)
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, grant)
		return
	}

	grants, err := h.Service.GetAll(userID)
	if err != nil {
		h.Logger.Error("GetPermissions: service error", "error", err, "user", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, GrantsResponse{Permissions: grants})
}

// UpdatePermissions merges a partial flag update into the user's grant row
// for the module named by the "module" query parameter.
func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	moduleName := r.URL.Query().Get("module")
	if moduleName == "" {
		h.WriteError(w, http.StatusBadRequest, "module query parameter is required")
		return
	}

	var dto UpdateAccessRightDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePermissions: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	grants, err := h.Service.UpdateOne(userID, moduleName, dto)
	if err != nil {
		h.Logger.Error("UpdatePermissions: service error", "error", err, "user", userID, "module", moduleName)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("UpdatePermissions: permissions updated", "user", userID, "module", moduleName)
	h.WriteJSON(w, http.StatusOK, GrantsResponse{Permissions: grants})
}

// RevokePermissions zeroes every grant for the user without deleting rows.
func (h *Handler) RevokePermissions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	grants, err := h.Service.RevokeAll(userID)
	if err != nil {
		h.Logger.Error("RevokePermissions: service error", "error", err, "user", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RevokePermissions: permissions revoked", "user", userID)
	h.WriteJSON(w, http.StatusOK, GrantsResponse{Permissions: grants})
}
