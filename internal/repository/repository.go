// Package repository implements the Event and Settings stores.
//
// Each store keeps its whole collection in memory and rewrites it as a
// single JSON blob under one key of a kv.Store on every mutation. There is
// no delta log, no transaction and no coordination between processes that
// share a backend: the last writer wins.
package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by the service layer when an event does not exist.
// The stores themselves report absence with a boolean.
var ErrNotFound = errors.New("not found")

// Storage keys. The web client reads the same keys from browser storage.
const (
	EventsKey   = "events"
	SettingsKey = "beoFlowSettings"
)

type options struct {
	now   func() time.Time
	newID func() string
}

// Option customises a store.
type Option func(*options)

// WithClock overrides the wall clock used for lastModified.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
