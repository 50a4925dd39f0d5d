package generate

import (
	"strings"

	"github.com/slashgen-ai/slashgen/internal/provider"
)

// messageStream adapts a provider completion stream to a plain byte stream.
// Some providers stream deltas, others stream the cumulative content so far;
// the adapter emits only the new suffix either way.
type messageStream struct {
	inner       *provider.CompletionStream
	accumulated string
}

func newMessageStream(inner *provider.CompletionStream) *messageStream {
	return &messageStream{inner: inner}
}

func (m *messageStream) Recv() ([]byte, error) {
	for {
		msg, err := m.inner.Recv()
		if err != nil {
			return nil, err
		}
		if msg == nil || msg.Content == "" {
			continue
		}

		text := msg.Content
		if m.accumulated != "" && strings.HasPrefix(text, m.accumulated) {
			text = text[len(m.accumulated):]
			m.accumulated = msg.Content
		} else {
			m.accumulated += text
		}
		if text == "" {
			continue
		}
		return []byte(text), nil
	}
}

func (m *messageStream) Close() {
	m.inner.Close()
}
