package catalog

import (
	"net/http"

	"github.com/unilanding/cms-backend/internal/transport"
)

type ServiceAPI interface {
	FindByName(name string) (*Module, error)
	ListActive() ([]*Module, error)
	EnsureModule(name string, active bool) (*Module, error)
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

func (h *Handler) GetModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Service.ListActive()
	if err != nil {
		h.Logger.Error("GetModules: failed to list modules", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	resp := ModulesResponse{Modules: make([]ModuleResponse, 0, len(modules))}
	for _, m := range modules {
		resp.Modules = append(resp.Modules, m.ToResponse())
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
