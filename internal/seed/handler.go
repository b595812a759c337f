package seed

import (
	"encoding/json"
	"net/http"

	"github.com/unilanding/cms-backend/internal/transport"
)

type ServiceAPI interface {
	Run(secret string) (*Result, error)
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

type runRequest struct {
	Secret string `json:"secret"`
}

// RunSeed bootstraps the deployment. It sits outside the JWT middleware
// because it must work on an empty database; the shared secret is the only
// credential.
func (h *Handler) RunSeed(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Run(req.Secret)
	if err != nil {
		h.Logger.Error("seed failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("seed completed", "modules", len(result.Modules), "admin_created", result.AdminCreated)
	h.WriteJSON(w, http.StatusOK, result)
}
