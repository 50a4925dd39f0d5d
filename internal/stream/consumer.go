// Package stream consumes ordered byte streams of generated text and extracts
// command strings from the accumulated output.
package stream

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"
)

// ByteStream is a pull-based source of ordered byte chunks. Recv returns
// io.EOF when the stream is exhausted.
type ByteStream interface {
	Recv() ([]byte, error)
	Close()
}

// Callbacks receives consumer notifications. OnChunk is called with exactly
// the newly decoded text of each chunk, never the full accumulator.
// OnComplete fires once at end-of-stream; it is never fired after OnError.
type Callbacks struct {
	OnChunk    func(text string)
	OnComplete func()
	OnError    func(err error)
}

// Consumer reads a byte stream incrementally, decoding UTF-8 across chunk
// boundaries and accumulating the full text for later extraction.
type Consumer struct {
	callbacks Callbacks

	accumulated strings.Builder
	pending     []byte
}

// NewConsumer creates a consumer with the given callbacks. Any callback may
// be nil.
func NewConsumer(callbacks Callbacks) *Consumer {
	return &Consumer{callbacks: callbacks}
}

// Process drains the stream. Chunks are surfaced in the exact order received.
// On a read error the error callback fires and processing stops. When ctx is
// cancelled the consumer stops invoking callbacks and releases the stream.
func (c *Consumer) Process(ctx context.Context, s ByteStream) error {
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		chunk, err := s.Recv()
		if err == io.EOF {
			if c.callbacks.OnComplete != nil {
				c.callbacks.OnComplete()
			}
			return nil
		}
		if err != nil {
			if c.callbacks.OnError != nil {
				c.callbacks.OnError(err)
			}
			return err
		}

		if text := c.decode(chunk); text != "" {
			c.accumulated.WriteString(text)
			if c.callbacks.OnChunk != nil {
				c.callbacks.OnChunk(text)
			}
		}
	}
}

// Text returns the full accumulated text decoded so far.
func (c *Consumer) Text() string {
	return c.accumulated.String()
}

// decode appends a chunk to any bytes held back from the previous chunk and
// returns the longest prefix that ends on a rune boundary. The remainder of a
// multi-byte rune split across chunks is held until its tail arrives.
func (c *Consumer) decode(chunk []byte) string {
	buf := append(c.pending, chunk...)
	c.pending = nil

	cut := len(buf)
	for i := len(buf) - 1; i >= 0 && len(buf)-i <= utf8.UTFMax; i-- {
		if utf8.RuneStart(buf[i]) {
			if !utf8.FullRune(buf[i:]) {
				cut = i
			}
			break
		}
	}

	if cut < len(buf) {
		c.pending = append(c.pending, buf[cut:]...)
	}
	return string(buf[:cut])
}
