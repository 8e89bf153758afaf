package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "github.com/GowthamOleti/itelo/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	// These are applied to every request.
	r.Use(middleware.RequestID) // Injects a unique request ID into the context.
	r.Use(middleware.RealIP)    // Sets the remote address to the real IP from proxy headers.
	r.Use(middleware.Logger)    // Logs the start and end of each request with useful info.
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error.

	// Serves the auto-generated Swagger UI for API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// A simple health check endpoint for liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// All primary API endpoints are grouped under the /api/v1 prefix.
	r.Route("/api/v1", func(r chi.Router) {

		// Group for standard JSON API routes that should have a request timeout
		// to prevent client connections from hanging indefinitely.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Settings ---
			r.Get("/settings", handler.GetSettings)
			r.Post("/settings", handler.UpdateSettings)

			// --- Sessions ---
			r.Get("/sessions", handler.GetSessions)
			r.Post("/sessions", handler.CreateSession)
			r.Get("/sessions/{sessionID}", handler.GetSession)
			r.Put("/sessions/{sessionID}/title", handler.UpdateSessionTitle)
			r.Delete("/sessions/{sessionID}", handler.DeleteSession)

			// --- Reminders ---
			r.Get("/reminders", handler.GetReminders)
		})

		// Group for the streaming endpoint. It must NOT have a timeout, as it
		// holds the connection open for the duration of the generation.
		r.Group(func(r chi.Router) {
			r.Post("/messages", handler.HandleSubmit)
		})
	})

	return r
}
