// Package audit records store operations as structured events.
//
// Events carry only the event type, a timestamp, and the entry count of
// the store after the operation. They never include service names,
// usernames, passwords, or the master passphrase, so an audit file leaks
// nothing the encrypted store protects.
package audit

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// EventType identifies an audited store operation.
type EventType string

const (
	EventUnlock       EventType = "store.unlock"
	EventUnlockFailed EventType = "store.unlock_failed"
	EventPut          EventType = "credential.put"
	EventDelete       EventType = "credential.delete"
)

// Event is one audited operation.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"ts"`
	Entries   int       `json:"entries"`
}

// New builds an event for the given operation, stamped with the current
// time. entries is the store size after the operation; pass 0 when no
// store was unlocked.
func New(t EventType, entries int) Event {
	return Event{Type: t, Timestamp: time.Now().UTC(), Entries: entries}
}

// EventEmitter accepts events for recording.
type EventEmitter interface {
	Emit(Event) error
}

// NopEmitter discards all events. Use when no audit backend is configured.
type NopEmitter struct{}

// Emit discards the event.
func (NopEmitter) Emit(Event) error { return nil }

// FileEmitter appends events to a file, one JSON object per line.
type FileEmitter struct {
	mu sync.Mutex
	f  *os.File
}

// NewFileEmitter opens (or creates) the audit file at path for appending.
func NewFileEmitter(path string) (*FileEmitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open audit file %q", path)
	}
	return &FileEmitter{f: f}, nil
}

// Emit appends one event as a JSON line.
func (e *FileEmitter) Emit(ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "cannot encode audit event")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.f.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "cannot write audit event")
	}
	return nil
}

// Close closes the underlying audit file.
func (e *FileEmitter) Close() error {
	return e.f.Close()
}
