package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// sseWriter frames values as server-sent events. Every frame gets a fresh id.
type sseWriter struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	mu      sync.Mutex
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("ResponseWriter does not support http.Flusher")
	}
	return &sseWriter{writer: w, flusher: flusher}, nil
}

func (w *sseWriter) writeEvent(event string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "id: %s\nevent: %s\ndata: %s\n\n", uuid.NewString(), event, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	w.flusher.Flush()
	return nil
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}
