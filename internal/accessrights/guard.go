package accessrights

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/unilanding/cms-backend/internal"
)

// PermissionReader is the only dependency the gate has on the grant store.
// Keeping it this narrow is what lets the gate sit in front of the account
// lifecycle code without a package cycle.
type PermissionReader interface {
	GrantsForUser(userID int64) ([]Grant, error)
}

// Gate rejects requests whose caller lacks the grants a route declared.
// It is stateless: identity and grants are re-resolved on every request, so
// grant changes take effect immediately.
type Gate struct {
	reader PermissionReader
	logger *slog.Logger
}

func NewGate(reader PermissionReader, logger *slog.Logger) *Gate {
	return &Gate{
		reader: reader,
		logger: logger,
	}
}

// Require builds the middleware for a route's declared requirements. The
// requirement list is fixed at route-registration time.
//
// An empty list passes the request through without touching identity or
// grants: routes with requirements always also run the authentication
// middleware first, so skipping the lookups here is safe.
func (g *Gate) Require(required ...Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(required) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok || user == nil {
				// Only reachable when a route declares requirements but was
				// wired without the authentication middleware.
				g.logger.Warn("authorization check failed: user not found in context",
					"path", r.URL.Path)
				writeGuardError(w, internal.NewUnauthorizedError(
					"Authenticated user not found", internal.ErrCodeIdentityMissing))
				return
			}

			grants, err := g.reader.GrantsForUser(user.ID)
			if err != nil {
				g.logger.ErrorContext(r.Context(), "authorization check failed",
					"error", err, "user_id", user.ID)
				writeGuardError(w, internal.NewInternalError("authorization check failed", err))
				return
			}

			decision := Evaluate(grants, required)
			if !decision.Allowed {
				g.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"missing", formatRequirements(decision.Missing))
				writeGuardError(w, internal.NewForbiddenError(
					deniedMessage(user.FullName, decision.Missing),
					internal.ErrCodePermissionDenied).WithDetails(decision.Missing))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func deniedMessage(fullName string, missing []Requirement) string {
	return "User " + fullName + " does not have the required permissions: " +
		formatRequirements(missing)
}

func formatRequirements(reqs []Requirement) string {
	parts := make([]string, 0, len(reqs))
	for _, req := range reqs {
		parts = append(parts, req.String())
	}
	return strings.Join(parts, ", ")
}

func writeGuardError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
