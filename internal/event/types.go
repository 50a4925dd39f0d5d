package event

import "github.com/slashgen-ai/slashgen/pkg/types"

// Session lifecycle and generation progress event types.
const (
	SessionCreated      EventType = "session.created"
	SessionUpdated      EventType = "session.updated"
	SessionDeleted      EventType = "session.deleted"
	GenerationStarted   EventType = "generation.started"
	GenerationChunk     EventType = "generation.chunk"
	GenerationCompleted EventType = "generation.completed"
	GenerationFailed    EventType = "generation.failed"
)

// SessionData is the payload for session lifecycle events.
type SessionData struct {
	Info *types.Session `json:"info"`
}

// GenerationStartedData is published when a provider call begins.
type GenerationStartedData struct {
	SessionID string          `json:"sessionID,omitempty"`
	Persona   types.PersonaID `json:"persona"`
	Streaming bool            `json:"streaming"`
}

// GenerationChunkData carries one decoded text chunk of a streamed response.
type GenerationChunkData struct {
	SessionID string `json:"sessionID,omitempty"`
	Text      string `json:"text"`
}

// GenerationCompletedData is published after successful extraction.
type GenerationCompletedData struct {
	SessionID string                   `json:"sessionID,omitempty"`
	Persona   types.PersonaID          `json:"persona"`
	Commands  []types.GeneratedCommand `json:"commands"`
}

// GenerationFailedData is published when a generation attempt fails.
type GenerationFailedData struct {
	SessionID string `json:"sessionID,omitempty"`
	Error     string `json:"error"`
}

// SessionIDOf returns the session an event belongs to, or "" when the event
// is not session-scoped.
func SessionIDOf(e Event) string {
	switch data := e.Data.(type) {
	case SessionData:
		if data.Info != nil {
			return data.Info.ID
		}
	case GenerationStartedData:
		return data.SessionID
	case GenerationChunkData:
		return data.SessionID
	case GenerationCompletedData:
		return data.SessionID
	case GenerationFailedData:
		return data.SessionID
	}
	return ""
}
