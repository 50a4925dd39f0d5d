package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slashgen-ai/slashgen/internal/session"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// createSessionRequest is the body for POST /session.
type createSessionRequest struct {
	UserID      string                   `json:"userID"`
	Preferences types.SessionPreferences `json:"preferences"`
}

// createSession handles POST /session.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "userID required")
		return
	}

	sess := s.sessions.Create(req.UserID, req.Preferences)
	writeJSON(w, http.StatusCreated, sess)
}

// getSession handles GET /session/{sessionID}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// updateSession handles PATCH /session/{sessionID}. The body is a context
// update; absent fields are left unchanged.
func (s *Server) updateSession(w http.ResponseWriter, r *http.Request) {
	var update types.ContextUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	sess, err := s.sessions.UpdateContext(chi.URLParam(r, "sessionID"), update)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// deleteSession handles DELETE /session/{sessionID}. Deleting an unknown
// session is a successful no-op.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	deleted := s.sessions.Delete(chi.URLParam(r, "sessionID"))
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// addSessionCommand handles POST /session/{sessionID}/command.
func (s *Server) addSessionCommand(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Command == "" {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "command required")
		return
	}

	sess, err := s.sessions.AddCommandToHistory(chi.URLParam(r, "sessionID"), body.Command)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// analyzeSession handles GET /session/{sessionID}/analyze.
func (s *Server) analyzeSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, session.Analyze(sess))
}

// getSessionStats handles GET /session/stats.
func (s *Server) getSessionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Stats())
}
