// Package metrics tracks counters for one pipeline run, served from the
// optional monitoring endpoint.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedErrors         int64
	EntriesSeen        int64
	EntriesInWindow    int64
	ItemsMatched       int64
	DuplicatesFiltered int64
	BodyFetches        int64

	// Timings
	LastProcessingTime time.Duration

	// Status
	LastRunTime time.Time
	LastError   string
	IsHealthy   bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) IncrementEntriesSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesSeen++
}

func (m *Metrics) IncrementEntriesInWindow() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesInWindow++
}

func (m *Metrics) IncrementItemsMatched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsMatched++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementBodyFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BodyFetches++
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastProcessingTime = duration
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":           m.FeedsFetched,
		"feed_errors":             m.FeedErrors,
		"entries_seen":            m.EntriesSeen,
		"entries_in_window":       m.EntriesInWindow,
		"items_matched":           m.ItemsMatched,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"body_fetches":            m.BodyFetches,
		"last_processing_time_ms": m.LastProcessingTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
