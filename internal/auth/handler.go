package auth

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/unilanding/cms-backend/internal"
	"github.com/unilanding/cms-backend/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	registered, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, registered)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	registered, err := h.Service.Login(dto)
	if err != nil {
		switch err {
		case internal.ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.Logger.Error("login failed", "error", err)
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, registered)
}

// CheckStatus confirms the caller's token is still good and hands back a
// fresh token pair along with the account.
func (h *Handler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "user not found")
		return
	}

	refreshed, err := h.Service.CheckStatus(user.ID)
	if err != nil {
		h.Logger.Error("check-status failed", "user_id", user.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, refreshed)
}

// GetUser returns the account addressed by primary id or external code.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "userId")

	user, err := h.Service.ActiveUser(idOrCode)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "userId")

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.UpdateUser(idOrCode, dto)
	if err != nil {
		h.Logger.Error("user update failed", "user", idOrCode, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) DisableUser(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "userId")

	user, err := h.Service.Disable(idOrCode)
	if err != nil {
		h.Logger.Error("user disable failed", "user", idOrCode, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) EnableUser(w http.ResponseWriter, r *http.Request) {
	idOrCode := chi.URLParam(r, "userId")

	user, err := h.Service.Enable(idOrCode)
	if err != nil {
		h.Logger.Error("user enable failed", "user", idOrCode, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

// AuthMiddleware validates the bearer token and loads the account into the
// request context. The database lookup on every request is deliberate so a
// disable takes effect immediately instead of when the token expires.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Error("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		uid, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			h.Logger.Warn("failed to parse user id from token claims", "value", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		authUser, err := h.Service.GetAuthUser(uid)
		if err != nil {
			h.Logger.Error("auth middleware: failed to load user", "user_id", uid, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := internal.ContextWithUser(r.Context(), authUser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
