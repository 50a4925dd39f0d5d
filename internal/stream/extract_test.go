package stream

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fencedResponse = "Here are your commands:\n\n" +
	"```bash\n/build --react --magic\n```\n\n" +
	"Some explanation.\n\n" +
	"```sh\n/test --coverage --e2e\n```\n"

func TestExtractFencedBlocks(t *testing.T) {
	commands := ExtractCommands(fencedResponse)
	assert.Equal(t, []string{"/build --react --magic", "/test --coverage --e2e"}, commands)
}

func TestExtractFencedIgnoresUntaggedBlocks(t *testing.T) {
	text := "```json\n{\"not\": \"a command\"}\n```\n```bash\n/scan --security\n```\n"
	assert.Equal(t, []string{"/scan --security"}, ExtractCommands(text))
}

func TestExtractFallbackMarkerLines(t *testing.T) {
	text := "Try these:\n" +
		"/build --react --magic\n" +
		"just a plain sentence\n" +
		"/scan --security --owasp\n" +
		"/analyze without flags\n" +
		"/improve --quality\n"

	commands := ExtractCommands(text)
	assert.Equal(t, []string{
		"/build --react --magic",
		"/scan --security --owasp",
		"/improve --quality",
	}, commands)
}

func TestExtractFallbackOnlyWhenNoFencedMatch(t *testing.T) {
	// A fenced match suppresses qualifying marker lines outside the fence.
	text := "/loose --line\n```bash\n/fenced --cmd\n```\n"
	assert.Equal(t, []string{"/fenced --cmd"}, ExtractCommands(text))
}

func TestExtractPreservesDuplicates(t *testing.T) {
	text := "```bash\n/build --x\n```\n```bash\n/build --x\n```\n"
	assert.Equal(t, []string{"/build --x", "/build --x"}, ExtractCommands(text))
}

func TestExtractEmptyText(t *testing.T) {
	assert.Empty(t, ExtractCommands(""))
	assert.Empty(t, ExtractCommands("nothing here"))
}

// Extraction round-trip: the same text produces the same commands no matter
// where the chunk boundary falls.
func TestExtractionChunkBoundaryIndependent(t *testing.T) {
	raw := []byte(fencedResponse)
	want := []string{"/build --react --magic", "/test --coverage --e2e"}

	for offset := 0; offset <= len(raw); offset++ {
		stream := &chunkStream{chunks: [][]byte{raw[:offset], raw[offset:]}}
		c := NewConsumer(Callbacks{})
		require.NoError(t, c.Process(context.Background(), stream))
		assert.Equal(t, want, ExtractCommands(c.Text()), "split at offset %d", offset)
	}
}
