/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:      Unique ID per request for tracing
  2. RequestLogger:  Structured request logging (zap)
  3. Recoverer:      Panic recovery (500 instead of crash)
  4. CORS:           Cross-origin requests for agent frontends

SECURITY NOTE:
  No authentication middleware. All endpoints are public; authorization
  is out of scope for this service.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/veltrix/hr-desk/logging"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Tool dispatch
		r.Route("/tools", func(r chi.Router) {
			r.Get("/", h.ListTools)
			r.Post("/{name}", h.InvokeTool)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)

			r.Route("/{id}/leave", func(r chi.Router) {
				r.Post("/", h.ApplyLeave)
				r.Get("/balance", h.GetLeaveBalance)
				r.Get("/history", h.GetLeaveHistory)
			})

			r.Route("/{id}/meetings", func(r chi.Router) {
				r.Get("/", h.ListMeetings)
				r.Post("/", h.ScheduleMeeting)
				r.Post("/cancel", h.CancelMeeting)
			})
		})

		// Ticket routes
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", h.ListTickets)
			r.Post("/", h.CreateTicket)
			r.Post("/{id}/status", h.UpdateTicketStatus)
		})

		// Prompt routes
		r.Get("/prompts/onboarding", h.OnboardingPrompt)
	})

	return r
}
