package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slashgen-ai/slashgen/internal/persona"
	"github.com/slashgen-ai/slashgen/internal/provider"
	"github.com/slashgen-ai/slashgen/internal/session"
	"github.com/slashgen-ai/slashgen/internal/stream"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// mockProvider returns canned content and counts invocations.
type mockProvider struct {
	content      string
	streamChunks []string
	err          error
	calls        int
}

func (m *mockProvider) ID() string   { return "mock" }
func (m *mockProvider) Name() string { return "Mock" }

func (m *mockProvider) Complete(ctx context.Context, req *provider.CompletionRequest) (*schema.Message, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.content, nil), nil
}

func (m *mockProvider) CreateCompletion(ctx context.Context, req *provider.CompletionRequest) (*provider.CompletionStream, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]*schema.Message, len(m.streamChunks))
	for i, chunk := range m.streamChunks {
		msgs[i] = schema.AssistantMessage(chunk, nil)
	}
	return provider.NewCompletionStream(schema.StreamReaderFromArray(msgs)), nil
}

func newTestService(t *testing.T, p *mockProvider, cfg types.GenerationConfig) (*Service, *session.Manager) {
	t.Helper()
	providers := provider.NewRegistry()
	providers.Register(p)
	sessions := session.NewManager(session.NewStore(), nil, types.SessionConfig{})
	return NewService(providers, persona.NewRegistry(), sessions, nil, cfg), sessions
}

func TestGenerateJSONMode(t *testing.T) {
	mock := &mockProvider{content: `{
		"commands": [
			{
				"id": "given-id",
				"command": "/build --init",
				"description": "Scaffold the project",
				"explanation": "Creates the initial structure",
				"expectedOutput": "Project created",
				"nextSteps": ["/test --unit"],
				"persona": "frontend",
				"confidence": 0.95
			}
		]
	}`}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	result, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:  "scaffold a react app",
		Persona: types.PersonaFrontend,
	})
	require.NoError(t, err)
	require.Len(t, result.Commands, 1)
	assert.Equal(t, 1, mock.calls)

	cmd := result.Commands[0]
	assert.Equal(t, "given-id", cmd.ID)
	assert.Equal(t, "/build --init", cmd.Command)
	assert.Equal(t, []string{"/test --unit"}, cmd.NextSteps)
	assert.Equal(t, 0.95, cmd.Confidence)
}

func TestGenerateValidationRejectsBeforeProviderCall(t *testing.T) {
	cases := []struct {
		name string
		req  *types.GenerationRequest
	}{
		{"empty prompt", &types.GenerationRequest{Persona: types.PersonaFrontend}},
		{"unknown persona", &types.GenerationRequest{Prompt: "x", Persona: "wizard"}},
		{"maxCommands too high", &types.GenerationRequest{Prompt: "x", Persona: types.PersonaQA, MaxCommands: 11}},
		{"maxCommands negative", &types.GenerationRequest{Prompt: "x", Persona: types.PersonaQA, MaxCommands: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockProvider{content: "{}"}
			svc, _ := newTestService(t, mock, types.GenerationConfig{})

			_, err := svc.Generate(context.Background(), tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Zero(t, mock.calls, "provider must not be called")
		})
	}
}

func TestGenerateUnknownSessionRejected(t *testing.T) {
	mock := &mockProvider{content: "{}"}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	_, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:    "x",
		Persona:   types.PersonaQA,
		SessionID: "nope",
	})
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Zero(t, mock.calls)
}

func TestGeneratePersonaEchoInvariant(t *testing.T) {
	// The provider claims a different persona on every command; the resolved
	// request persona must win.
	mock := &mockProvider{content: `{
		"commands": [
			{"command": "/scan --deps", "persona": "security"},
			{"command": "/scan --secrets", "persona": "backend"}
		]
	}`}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	result, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:  "audit the project",
		Persona: types.PersonaQA,
	})
	require.NoError(t, err)
	require.Len(t, result.Commands, 2)
	for _, cmd := range result.Commands {
		assert.Equal(t, types.PersonaQA, cmd.Persona)
	}
}

func TestGenerateNormalizesSparseEntries(t *testing.T) {
	mock := &mockProvider{content: `{
		"commands": [
			{"command": "analyze --deep", "nextSteps": "not an array"}
		]
	}`}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	result, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:  "inspect",
		Persona: types.PersonaAnalyzer,
	})
	require.NoError(t, err)
	require.Len(t, result.Commands, 1)

	cmd := result.Commands[0]
	assert.NotEmpty(t, cmd.ID, "missing id gets a fresh one")
	assert.Equal(t, "/analyze --deep", cmd.Command, "marker prepended when absent")
	assert.Equal(t, []string{}, cmd.NextSteps)
	assert.Equal(t, 0.8, cmd.Confidence)
}

func TestGenerateMalformedCommandsField(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"string commands", `{"commands": "oops"}`},
		{"null commands", `{"commands": null}`},
		{"missing commands", `{}`},
		{"object commands", `{"commands": {"a": 1}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockProvider{content: tc.content}
			svc, _ := newTestService(t, mock, types.GenerationConfig{})

			result, err := svc.Generate(context.Background(), &types.GenerationRequest{
				Prompt:  "x",
				Persona: types.PersonaQA,
			})
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Nil(t, result)
		})
	}
}

func TestGenerateProviderFailureWrapped(t *testing.T) {
	mock := &mockProvider{err: errors.New("connection reset")}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	_, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:  "x",
		Persona: types.PersonaQA,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 1, mock.calls, "no retry by default")
}

func TestGenerateOptInRetry(t *testing.T) {
	mock := &mockProvider{err: errors.New("transient")}
	svc, _ := newTestService(t, mock, types.GenerationConfig{
		Retry: types.RetryConfig{Enabled: true, MaxAttempts: 3, InitialDelayMS: 1, MaxDelayMS: 2},
	})

	_, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:  "x",
		Persona: types.PersonaQA,
	})
	require.Error(t, err)
	assert.Equal(t, 3, mock.calls)
}

func TestGenerateRecordsSessionHistory(t *testing.T) {
	mock := &mockProvider{content: `{"commands": [{"command": "/improve --quality"}]}`}
	svc, sessions := newTestService(t, mock, types.GenerationConfig{})
	sess := sessions.Create("user-1", types.SessionPreferences{})

	_, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:    "make it better",
		Persona:   types.PersonaRefactorer,
		SessionID: sess.ID,
	})
	require.NoError(t, err)

	updated := sessions.Get(sess.ID)
	require.NotNil(t, updated)
	assert.Equal(t, []string{"/improve --quality"}, updated.Context.RecentCommands)
}

func TestGenerateUsesSessionDefaultPersona(t *testing.T) {
	mock := &mockProvider{content: `{"commands": [{"command": "/design --api"}]}`}
	svc, sessions := newTestService(t, mock, types.GenerationConfig{})
	sess := sessions.Create("user-1", types.SessionPreferences{DefaultPersona: types.PersonaArchitect})

	result, err := svc.Generate(context.Background(), &types.GenerationRequest{
		Prompt:    "plan the service",
		SessionID: sess.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, types.PersonaArchitect, result.Persona)
}

func TestGenerateForSessionCreatesSession(t *testing.T) {
	mock := &mockProvider{content: `{"commands": [{"command": "/build --x"}]}`}
	svc, sessions := newTestService(t, mock, types.GenerationConfig{})

	result, err := svc.GenerateForSession(context.Background(), "user-9", &types.GenerationRequest{
		Prompt:  "start",
		Persona: types.PersonaFrontend,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.SessionID)

	sess := sessions.Get(result.SessionID)
	require.NotNil(t, sess)
	assert.Equal(t, "user-9", sess.UserID)
	assert.Equal(t, []string{"/build --x"}, sess.Context.RecentCommands)
}

func TestGenerateStream(t *testing.T) {
	mock := &mockProvider{streamChunks: []string{"Run ", "`/build", " --watch`", " first."}}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	bs, err := svc.GenerateStream(context.Background(), &types.GenerationRequest{
		Prompt:  "watch mode",
		Persona: types.PersonaFrontend,
	})
	require.NoError(t, err)

	var chunks []string
	consumer := stream.NewConsumer(stream.Callbacks{
		OnChunk: func(text string) { chunks = append(chunks, text) },
	})
	require.NoError(t, consumer.Process(context.Background(), bs))

	assert.Equal(t, []string{"Run ", "`/build", " --watch`", " first."}, chunks)
	assert.Equal(t, "Run `/build --watch` first.", consumer.Text())
}

func TestMessageStreamCumulativeContent(t *testing.T) {
	// Some providers re-send the full content so far; only the new suffix may
	// surface.
	mock := &mockProvider{streamChunks: []string{"Hello", "Hello world", "Hello world!"}}
	svc, _ := newTestService(t, mock, types.GenerationConfig{})

	bs, err := svc.GenerateStream(context.Background(), &types.GenerationRequest{
		Prompt:  "greet",
		Persona: types.PersonaMentor,
	})
	require.NoError(t, err)

	consumer := stream.NewConsumer(stream.Callbacks{})
	require.NoError(t, consumer.Process(context.Background(), bs))
	assert.Equal(t, "Hello world!", consumer.Text())
}

func TestStripFence(t *testing.T) {
	fenced := "```json\n{\"commands\": []}\n```"
	assert.Equal(t, `{"commands": []}`, stripFence(fenced))
	assert.Equal(t, `{"commands": []}`, stripFence(`{"commands": []}`))
}
