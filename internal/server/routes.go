package server

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	r := s.router

	// Session routes
	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Get("/stats", s.getSessionStats)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Patch("/", s.updateSession)
			r.Delete("/", s.deleteSession)

			r.Post("/command", s.addSessionCommand)
			r.Get("/analyze", s.analyzeSession)
		})
	})

	// Persona catalog
	r.Route("/persona", func(r chi.Router) {
		r.Get("/", s.listPersonas)
		r.Get("/{personaID}", s.getPersona)
	})

	// Command generation
	r.Post("/generate", s.generateCommands)
	r.Post("/generate/stream", s.generateCommandsStream)

	// Event streaming (SSE)
	r.Get("/event", s.events)
}
