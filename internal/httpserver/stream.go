package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/sse"
)

// sseWriter is the domain.EventSink of one HTTP response. Headers are
// committed on the first event so that failures before it can still be
// reported as JSON.
type sseWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
	events  int
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	return &sseWriter{
		w:  w,
		rc: http.NewResponseController(w),
	}
}

// Emit writes one record and flushes it to the client.
func (s *sseWriter) Emit(ctx context.Context, event domain.StreamEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !s.started {
		// A stream may outlive the server's write timeout.
		if err := s.rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
			return fmt.Errorf("failed to clear write deadline: %w", err)
		}

		header := s.w.Header()
		header.Set("Content-Type", sse.ContentType)
		header.Set("Cache-Control", "no-cache")
		header.Set("Connection", "keep-alive")
		header.Set("X-Accel-Buffering", "no")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	if err := sse.Write(s.w, event); err != nil {
		return err
	}
	s.events++

	if err := s.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("failed to flush: %w", err)
	}

	return nil
}

// Started reports whether any event was written.
func (s *sseWriter) Started() bool {
	return s.started
}

// Events returns the number of records written.
func (s *sseWriter) Events() int {
	return s.events
}
