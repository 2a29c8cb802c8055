package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sink receives events in order. A Send error means the consumer is gone.
type Sink interface {
	Send(e Event) error
}

// ErrStreamingUnsupported is returned when the response writer cannot flush.
var ErrStreamingUnsupported = errors.New("streaming not supported")

// SSEWriter writes events as server-sent events, flushing after each one.
type SSEWriter struct {
	w       io.Writer
	flusher http.Flusher
}

// NewSSEWriter sets the event-stream headers on w.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Send writes e as one "data: <json>" frame followed by a blank line.
func (s *SSEWriter) Send(e Event) error {
	if err := WriteFrame(s.w, e); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteFrame writes e to w in SSE framing.
func WriteFrame(w io.Writer, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// ReadEvents decodes an SSE body, calling fn for every event until a
// terminal event or EOF.
func ReadEvents(r io.Reader, fn func(Event) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for sc.Scan() {
		data, ok := bytes.CutPrefix(sc.Bytes(), []byte("data: "))
		if !ok {
			continue
		}
		var e Event
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("decoding event: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
		if e.Terminal() {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading events: %w", err)
	}
	return io.ErrUnexpectedEOF
}

// Recorder collects events in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Send(e Event) error {
	r.Events = append(r.Events, e)
	return nil
}
