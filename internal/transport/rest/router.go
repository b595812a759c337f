package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/unilanding/cms-backend/internal/accessrights"
	"github.com/unilanding/cms-backend/internal/auth"
	"github.com/unilanding/cms-backend/internal/blog"
	"github.com/unilanding/cms-backend/internal/catalog"
	"github.com/unilanding/cms-backend/internal/pagebuilder"
	"github.com/unilanding/cms-backend/internal/seed"
	"github.com/unilanding/cms-backend/internal/transport/middleware"
	"github.com/unilanding/cms-backend/internal/transport/swagger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	AccessRight *accessrights.Handler
	Catalog     *catalog.Handler
	Blog        *blog.Handler
	PageBuilder *pagebuilder.Handler
	Seed        *seed.Handler
}

// RegisterAllRoutes wires the full API surface. Every protected route runs
// the authentication middleware; the permission requirements each route
// group declares here are the single source of truth for authorization.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, gate *accessrights.Gate, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Bootstrap; shared secret in the body, no JWT.
		r.Post("/seed", handlers.Seed.RunSeed)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", handlers.Auth.Register)
			sr.Post("/login", handlers.Auth.Login)

			sr.Group(func(pr chi.Router) {
				pr.Use(handlers.Auth.AuthMiddleware)

				pr.Get("/check-status", handlers.Auth.CheckStatus)
				pr.Get("/users/{userId}", handlers.Auth.GetUser)

				pr.Group(func(ur chi.Router) {
					ur.Use(gate.Require(accessrights.Req("Authentication", accessrights.CanUpdate)))
					ur.Patch("/users/{userId}", handlers.Auth.UpdateUser)
					ur.Patch("/users/{userId}/enable", handlers.Auth.EnableUser)
				})

				pr.Group(func(dr chi.Router) {
					dr.Use(gate.Require(accessrights.Req("Authentication", accessrights.CanDelete)))
					dr.Patch("/users/{userId}/disable", handlers.Auth.DisableUser)
				})
			})
		})

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			// Authenticated but requirement-free; the gate passes it through.
			pr.With(gate.Require()).Get("/modules", handlers.Catalog.GetModules)

			pr.Route("/access-rights", func(ar chi.Router) {
				ar.With(gate.Require(accessrights.Req("Permission", accessrights.CanRead))).
					Get("/{userId}", handlers.AccessRight.GetPermissions)
				ar.With(gate.Require(accessrights.Req("Permission", accessrights.CanUpdate))).
					Patch("/{userId}", handlers.AccessRight.UpdatePermissions)
				ar.With(gate.Require(accessrights.Req("Permission", accessrights.CanDelete))).
					Patch("/{userId}/revoke", handlers.AccessRight.RevokePermissions)
			})

			pr.Route("/blog", func(br chi.Router) {
				br.With(gate.Require(accessrights.Req("Blog", accessrights.CanRead))).
					Get("/", handlers.Blog.ListComponents)
				br.With(gate.Require(accessrights.Req("Blog", accessrights.CanRead))).
					Get("/{slug}", handlers.Blog.GetComponent)
				br.With(gate.Require(accessrights.Req("Blog", accessrights.CanCreate))).
					Post("/", handlers.Blog.UpsertComponent)
				br.With(gate.Require(accessrights.Req("Blog", accessrights.CanUpdate))).
					Patch("/{slug}", handlers.Blog.UpdateComponent)
				br.With(gate.Require(accessrights.Req("Blog", accessrights.CanDelete))).
					Delete("/{slug}", handlers.Blog.DeleteComponent)
			})

			pr.Route("/components", func(cr chi.Router) {
				cr.With(gate.Require(accessrights.Req("Puck", accessrights.CanRead))).
					Get("/", handlers.PageBuilder.ListComponents)
				cr.With(gate.Require(accessrights.Req("Puck", accessrights.CanRead))).
					Get("/{slug}", handlers.PageBuilder.GetComponent)
				cr.With(gate.Require(accessrights.Req("Puck", accessrights.CanCreate))).
					Post("/", handlers.PageBuilder.CreateComponent)
				cr.With(gate.Require(accessrights.Req("Puck", accessrights.CanUpdate))).
					Patch("/{slug}", handlers.PageBuilder.UpdateComponent)
				cr.With(gate.Require(accessrights.Req("Puck", accessrights.CanDelete))).
					Delete("/{slug}", handlers.PageBuilder.DeleteComponent)
			})
		})
	})
}
