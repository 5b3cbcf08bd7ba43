package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noamsilver/luach-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                                     liveness + db health
//	GET  /api/v1/convert/{date}                      Gregorian -> Hebrew
//	GET  /api/v1/convert/hebrew/{year}/{month}/{day} Hebrew -> Gregorian
//	GET  /api/v1/today                               current Hebrew date
//	GET  /api/v1/years/{year}                        year summary
//	GET  /api/v1/add                                 date arithmetic
//	GET  /api/v1/between                             units between dates
//	GET  /api/v1/me                                  (key) current user
//	GET  /api/v1/me/keys                             (key) list own keys
//	DEL  /api/v1/me/keys/{keyID}                     (key) revoke own key
//	GET  /api/v1/admin/users                         (admin) list users
//	POST /api/v1/admin/users                         (admin) create user
//	POST /api/v1/admin/users/{userID}/keys           (admin) issue key
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Public routes
		// ======================================================================
		r.Get("/convert/hebrew/{year}/{month}/{day}", handlers.ConvertHebrew)
		r.Get("/convert/{date}", handlers.ConvertGregorian)
		r.Get("/today", handlers.Today)
		r.Get("/years/{year}", handlers.YearInfo)
		r.Get("/add", handlers.Add)
		r.Get("/between", handlers.BetweenDates)

		// ======================================================================
		// User routes (authenticated)
		// ======================================================================
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(handlers.db, logger))
			r.Get("/me", handlers.GetCurrentUser)
			r.Get("/me/keys", handlers.GetMyAPIKeys)
			r.Delete("/me/keys/{keyID}", handlers.RevokeMyAPIKey)
		})

		// ======================================================================
		// Admin routes (admin key only)
		// ======================================================================
		r.Group(func(r chi.Router) {
			r.Use(AdminOnlyMiddleware(cfg, logger))
			r.Get("/admin/users", handlers.ListUsers)
			r.Post("/admin/users", handlers.CreateUser)
			r.Post("/admin/users/{userID}/keys", handlers.CreateAPIKey)
		})
	})

	return r
}
