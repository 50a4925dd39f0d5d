package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slashgen-ai/slashgen/internal/event"
	"github.com/slashgen-ai/slashgen/internal/generate"
	"github.com/slashgen-ai/slashgen/internal/session"
	"github.com/slashgen-ai/slashgen/internal/stream"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// generateCommands handles POST /generate (JSON mode).
func (s *Server) generateCommands(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	result, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// streamResult is the terminal payload of a streamed generation: the full
// text plus the command strings extracted from it.
type streamResult struct {
	Text     string   `json:"text"`
	Commands []string `json:"commands"`
}

// generateCommandsStream handles POST /generate/stream. The response is an
// SSE stream of chunk events followed by a single complete event carrying the
// extracted commands.
func (s *Server) generateCommandsStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	bs, err := s.generator.GenerateStream(r.Context(), &req)
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	sse, err := startSSE(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}

	// The complete callback reads back the consumer's accumulated text, so
	// the variable must exist before the callbacks close over it.
	var consumer *stream.Consumer
	consumer = stream.NewConsumer(stream.Callbacks{
		OnChunk: func(text string) {
			sse.writeEvent("chunk", map[string]string{"text": text})
			s.bus.Publish(event.Event{
				Type: event.GenerationChunk,
				Data: event.GenerationChunkData{SessionID: req.SessionID, Text: text},
			})
		},
		OnComplete: func() {
			sse.writeEvent("complete", streamResult{
				Text:     consumer.Text(),
				Commands: stream.ExtractCommands(consumer.Text()),
			})
		},
		OnError: func(err error) {
			sse.writeEvent("error", map[string]string{"message": err.Error()})
		},
	})
	consumer.Process(r.Context(), bs)
}

// writeGenerateError maps generation errors onto HTTP statuses.
func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generate.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, generate.ErrMalformedResponse), errors.Is(err, generate.ErrGenerationFailed):
		writeError(w, http.StatusBadGateway, ErrCodeProviderError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
	}
}
