// Package sse encodes chat stream events in the Server-Sent-Events framing
// used by the chat endpoint and parses such streams back.
//
// Every record is a single "data: " line followed by a blank line. Chunk
// records carry a JSON object {"content": "..."}; the stream ends with the
// literal record "data: [DONE]". Clients must treat a stream that ends without
// the [DONE] record as incomplete.
package sse

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davidbz/howl/internal/domain"
)

const (
	// ContentType is the media type of an event stream.
	ContentType = "text/event-stream"

	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
	recordEnd    = "\n\n"
)

// ErrIncompleteStream is returned when a stream ends before the [DONE] record.
var ErrIncompleteStream = errors.New("stream ended without [DONE]")

type chunkPayload struct {
	Content string `json:"content"`
}

// Encode renders one event as a complete record.
func Encode(event domain.StreamEvent) ([]byte, error) {
	switch event.Kind {
	case domain.EventChunk:
		payload, err := json.Marshal(chunkPayload{Content: event.Content})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal chunk: %w", err)
		}
		record := make([]byte, 0, len(dataPrefix)+len(payload)+len(recordEnd))
		record = append(record, dataPrefix...)
		record = append(record, payload...)
		record = append(record, recordEnd...)
		return record, nil
	case domain.EventDone:
		return []byte(dataPrefix + doneSentinel + recordEnd), nil
	default:
		return nil, fmt.Errorf("unknown event kind %d", int(event.Kind))
	}
}

// Write encodes event and writes it to w.
func Write(w io.Writer, event domain.StreamEvent) error {
	record, err := Encode(event)
	if err != nil {
		return err
	}
	if _, err := w.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Reader parses records produced by Encode.
type Reader struct {
	scanner *bufio.Scanner
	done    bool
}

// NewReader creates a reader over an event stream body.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next event. After the done event it returns io.EOF; a
// body that ends first yields ErrIncompleteStream.
func (r *Reader) Next() (domain.StreamEvent, error) {
	if r.done {
		return domain.StreamEvent{}, io.EOF
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			continue
		}

		data, ok := strings.CutPrefix(line, dataPrefix)
		if !ok {
			return domain.StreamEvent{}, fmt.Errorf("unexpected line %q", line)
		}

		if data == doneSentinel {
			r.done = true
			return domain.DoneEvent(), nil
		}

		var payload chunkPayload
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			return domain.StreamEvent{}, fmt.Errorf("failed to decode chunk: %w", err)
		}
		return domain.ChunkEvent(payload.Content), nil
	}

	if err := r.scanner.Err(); err != nil {
		return domain.StreamEvent{}, fmt.Errorf("failed to read stream: %w", err)
	}

	return domain.StreamEvent{}, ErrIncompleteStream
}

// ReadAll consumes a whole stream and returns the chunk contents in order.
func ReadAll(r io.Reader) ([]string, error) {
	reader := NewReader(r)

	var chunks []string
	for {
		event, err := reader.Next()
		if err != nil {
			return chunks, err
		}
		if event.Kind == domain.EventDone {
			return chunks, nil
		}
		chunks = append(chunks, event.Content)
	}
}
