package processor

import (
	"log"
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Writer wraps the async Influx WriteAPI and tracks the last write error so
// /healthz and /readyz can report sink health.
type Writer struct {
	api     api.WriteAPI
	mu      sync.RWMutex
	lastErr time.Time
	counts  map[string]int64 // per field
}

// NewWriter starts the listener for Influx's asynchronous write errors.
func NewWriter(w api.WriteAPI) *Writer {
	ww := &Writer{
		api:     w,
		lastErr: time.Now().Add(-24 * time.Hour),
		counts:  make(map[string]int64),
	}
	go func() {
		for err := range w.Errors() {
			if err != nil {
				ww.mu.Lock()
				ww.lastErr = time.Now()
				ww.mu.Unlock()
				log.Printf("processor: influx write error: %v", err)
			}
		}
	}()
	return ww
}

// WritePoint enqueues a point on the async write API.
func (w *Writer) WritePoint(p *write.Point) {
	if w == nil {
		return
	}
	w.api.WritePoint(p)
}

// LastErrorAge is the time since the most recent write error.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// MarkResult counts a stored result per field.
func (w *Writer) MarkResult(fieldID string) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.counts[fieldID]++
	w.mu.Unlock()
}

// Count reads the stored-result counter for a field.
func (w *Writer) Count(fieldID string) int64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	c := w.counts[fieldID]
	w.mu.RUnlock()
	return c
}
