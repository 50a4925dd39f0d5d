package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/slashgen-ai/slashgen/internal/event"
	"github.com/slashgen-ai/slashgen/internal/logging"
	"github.com/slashgen-ai/slashgen/internal/persona"
	"github.com/slashgen-ai/slashgen/internal/provider"
	"github.com/slashgen-ai/slashgen/internal/session"
	"github.com/slashgen-ai/slashgen/internal/stream"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// Sentinel error categories. Validation errors are rejected before any
// provider call; provider-level failures surface as ErrGenerationFailed with
// the cause chained for logs.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrGenerationFailed  = errors.New("generation failed")
	ErrMalformedResponse = errors.New("malformed provider response")
)

const (
	defaultMaxCommands = 3
	maxCommandsLimit   = 10
	defaultConfidence  = 0.8
)

// Service orchestrates persona resolution, prompt construction and the
// provider call. It holds no mutable state across calls.
type Service struct {
	providers *provider.Registry
	personas  *persona.Registry
	sessions  *session.Manager
	bus       *event.Bus
	builder   Builder
	cfg       types.GenerationConfig
	log       zerolog.Logger
}

// NewService creates a generation service. The bus may be nil when no event
// consumers exist.
func NewService(providers *provider.Registry, personas *persona.Registry, sessions *session.Manager, bus *event.Bus, cfg types.GenerationConfig) *Service {
	return &Service{
		providers: providers,
		personas:  personas,
		sessions:  sessions,
		bus:       bus,
		cfg:       cfg,
		log:       logging.Component("generate"),
	}
}

// Generate runs a JSON-mode generation call: validate, build prompts, call
// the provider once, parse and normalize the structured response. Successful
// commands are appended to the session history afterwards.
func (s *Service) Generate(ctx context.Context, req *types.GenerationRequest) (*types.GenerationResult, error) {
	profile, sess, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	s.publish(event.GenerationStarted, event.GenerationStartedData{
		SessionID: req.SessionID,
		Persona:   profile.ID,
		Streaming: false,
	})

	completion := &provider.CompletionRequest{
		Messages: provider.NewPromptPair(
			s.builder.SystemPrompt(profile, req.MaxCommands, true),
			s.builder.UserPrompt(req, sess),
		),
	}

	msg, err := s.complete(ctx, completion)
	if err != nil {
		return nil, s.fail(req.SessionID, fmt.Errorf("%w: %v", ErrGenerationFailed, err))
	}
	if msg == nil || msg.Content == "" {
		return nil, s.fail(req.SessionID, fmt.Errorf("%w: empty provider response", ErrGenerationFailed))
	}

	commands, err := parseCommands(msg.Content, profile.ID)
	if err != nil {
		return nil, s.fail(req.SessionID, err)
	}

	if req.SessionID != "" {
		for _, cmd := range commands {
			if strings.HasPrefix(cmd.Command, types.CommandMarker) {
				if _, err := s.sessions.AddCommandToHistory(req.SessionID, cmd.Command); err != nil {
					s.log.Warn().Err(err).Str("sessionID", req.SessionID).Msg("recording command history")
					break
				}
			}
		}
	}

	s.publish(event.GenerationCompleted, event.GenerationCompletedData{
		SessionID: req.SessionID,
		Persona:   profile.ID,
		Commands:  commands,
	})

	return &types.GenerationResult{
		SessionID: req.SessionID,
		Persona:   profile.ID,
		Commands:  commands,
	}, nil
}

// GenerateStream runs a streaming generation call and returns the raw byte
// stream of incremental text. The caller owns consumption (typically via
// stream.Consumer) and extraction; the service accumulates nothing.
func (s *Service) GenerateStream(ctx context.Context, req *types.GenerationRequest) (stream.ByteStream, error) {
	profile, sess, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	s.publish(event.GenerationStarted, event.GenerationStartedData{
		SessionID: req.SessionID,
		Persona:   profile.ID,
		Streaming: true,
	})

	completion := &provider.CompletionRequest{
		Messages: provider.NewPromptPair(
			s.builder.SystemPrompt(profile, req.MaxCommands, false),
			s.builder.UserPrompt(req, sess),
		),
	}

	p, err := s.providers.Default()
	if err != nil {
		return nil, s.fail(req.SessionID, fmt.Errorf("%w: %v", ErrGenerationFailed, err))
	}
	cs, err := p.CreateCompletion(ctx, completion)
	if err != nil {
		return nil, s.fail(req.SessionID, fmt.Errorf("%w: %v", ErrGenerationFailed, err))
	}
	return newMessageStream(cs), nil
}

// GenerateForSession resolves or creates a session for the user before
// generating, so the commands land in that session's history. When the
// request names no persona the session's default persona applies.
func (s *Service) GenerateForSession(ctx context.Context, userID string, req *types.GenerationRequest) (*types.GenerationResult, error) {
	if req.SessionID == "" || s.sessions.Get(req.SessionID) == nil {
		sess := s.sessions.Create(userID, types.SessionPreferences{
			DefaultPersona: req.Persona,
			TechStack:      req.TechStack,
		})
		req.SessionID = sess.ID
	}
	return s.Generate(ctx, req)
}

// prepare validates the request and resolves the persona and session. No
// provider call happens until it succeeds.
func (s *Service) prepare(req *types.GenerationRequest) (*types.PersonaProfile, *types.Session, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, nil, fmt.Errorf("%w: prompt must not be empty", ErrInvalidRequest)
	}
	if req.MaxCommands == 0 {
		req.MaxCommands = s.cfg.DefaultMaxCommands
		if req.MaxCommands == 0 {
			req.MaxCommands = defaultMaxCommands
		}
	}
	if req.MaxCommands < 1 || req.MaxCommands > maxCommandsLimit {
		return nil, nil, fmt.Errorf("%w: maxCommands must be between 1 and %d", ErrInvalidRequest, maxCommandsLimit)
	}

	var sess *types.Session
	if req.SessionID != "" {
		sess = s.sessions.Get(req.SessionID)
		if sess == nil {
			return nil, nil, fmt.Errorf("%w: %s", session.ErrNotFound, req.SessionID)
		}
	}

	personaID := req.Persona
	if personaID == "" && sess != nil {
		personaID = sess.Preferences.DefaultPersona
	}
	profile, err := s.personas.Get(personaID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return profile, sess, nil
}

// complete issues the provider call, retrying only when the opt-in retry
// policy is enabled in config. The default is a single attempt.
func (s *Service) complete(ctx context.Context, req *provider.CompletionRequest) (*schema.Message, error) {
	p, err := s.providers.Default()
	if err != nil {
		return nil, err
	}

	if !s.cfg.Retry.Enabled {
		return p.Complete(ctx, req)
	}

	policy := backoff.NewExponentialBackOff()
	if s.cfg.Retry.InitialDelayMS > 0 {
		policy.InitialInterval = time.Duration(s.cfg.Retry.InitialDelayMS) * time.Millisecond
	}
	if s.cfg.Retry.MaxDelayMS > 0 {
		policy.MaxInterval = time.Duration(s.cfg.Retry.MaxDelayMS) * time.Millisecond
	}
	attempts := s.cfg.Retry.MaxAttempts
	if attempts < 1 {
		attempts = 3
	}

	var msg *schema.Message
	operation := func() error {
		var callErr error
		msg, callErr = p.Complete(ctx, req)
		return callErr
	}
	err = backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx))
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *Service) fail(sessionID string, err error) error {
	s.log.Error().Err(err).Str("sessionID", sessionID).Msg("generation failed")
	s.publish(event.GenerationFailed, event.GenerationFailedData{
		SessionID: sessionID,
		Error:     err.Error(),
	})
	return err
}

func (s *Service) publish(t event.EventType, data any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.Event{Type: t, Data: data})
}

// rawCommand mirrors the requested JSON shape loosely enough to survive
// sloppy provider output.
type rawCommand struct {
	ID             string          `json:"id"`
	Command        string          `json:"command"`
	Description    string          `json:"description"`
	Explanation    string          `json:"explanation"`
	ExpectedOutput string          `json:"expectedOutput"`
	NextSteps      json.RawMessage `json:"nextSteps"`
	Persona        string          `json:"persona"`
	Confidence     *float64        `json:"confidence"`
}

// parseCommands parses a JSON-mode response body into normalized commands.
// The commands field must be an array. Normalization: fresh id when missing,
// confidence defaults to 0.8, non-array nextSteps becomes empty, and persona
// is forced to the resolved id regardless of the provider's claim.
func parseCommands(body string, resolved types.PersonaID) ([]types.GeneratedCommand, error) {
	var envelope struct {
		Commands json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal([]byte(stripFence(body)), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// A missing or null commands field unmarshals cleanly into a nil slice;
	// it is a provider error, not an empty result.
	if len(envelope.Commands) == 0 || string(envelope.Commands) == "null" {
		return nil, fmt.Errorf("%w: commands is not an array", ErrMalformedResponse)
	}

	var raw []rawCommand
	if err := json.Unmarshal(envelope.Commands, &raw); err != nil {
		return nil, fmt.Errorf("%w: commands is not an array", ErrMalformedResponse)
	}

	commands := make([]types.GeneratedCommand, 0, len(raw))
	for _, rc := range raw {
		if rc.Command == "" {
			continue
		}
		cmd := types.GeneratedCommand{
			ID:             rc.ID,
			Command:        rc.Command,
			Description:    rc.Description,
			Explanation:    rc.Explanation,
			ExpectedOutput: rc.ExpectedOutput,
			NextSteps:      []string{},
			Persona:        resolved,
			Confidence:     defaultConfidence,
		}
		if cmd.ID == "" {
			cmd.ID = uuid.NewString()
		}
		if rc.Confidence != nil {
			cmd.Confidence = *rc.Confidence
		}
		if len(rc.NextSteps) > 0 {
			var steps []string
			if err := json.Unmarshal(rc.NextSteps, &steps); err == nil && steps != nil {
				cmd.NextSteps = steps
			}
		}
		if !strings.HasPrefix(cmd.Command, types.CommandMarker) {
			cmd.Command = types.CommandMarker + cmd.Command
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

// stripFence unwraps a response the provider wrapped in a markdown code
// fence despite instructions.
func stripFence(body string) string {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "```") {
		return body
	}
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
