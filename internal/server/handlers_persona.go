package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// listPersonas handles GET /persona.
func (s *Server) listPersonas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.personas.List())
}

// getPersona handles GET /persona/{personaID}. The not-found message carries
// the registry's closest-match suggestion.
func (s *Server) getPersona(w http.ResponseWriter, r *http.Request) {
	profile, err := s.personas.Get(types.PersonaID(chi.URLParam(r, "personaID")))
	if err != nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
