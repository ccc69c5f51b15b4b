package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/beoflow/internal/kv"
	"github.com/Shivanand-hulikatti/beoflow/internal/model"
)

// EventRepository is the in-memory source of truth for BEO records,
// persisted as one blob under EventsKey.
type EventRepository struct {
	mu     sync.Mutex
	events []model.Event
	blob   *blob
	now    func() time.Time
	newID  func() string
}

// NewEventRepository constructs the store and eagerly loads the persisted
// collection. An absent or corrupt blob yields an empty collection.
func NewEventRepository(ctx context.Context, store kv.Store, log logrus.FieldLogger, opts ...Option) *EventRepository {
	o := buildOptions(opts)
	r := &EventRepository{
		blob:  newBlob(store, EventsKey, "events", log),
		now:   o.now,
		newID: o.newID,
	}

	if raw, ok := r.blob.load(ctx); ok {
		var events []model.Event
		if err := json.Unmarshal(raw, &events); err != nil {
			r.blob.corrupt(err)
		} else {
			r.events = events
		}
	}
	return r
}

// List returns a copy of every event in insertion order.
func (r *EventRepository) List() []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Event, len(r.events))
	for i, e := range r.events {
		out[i] = e.Clone()
	}
	return out
}

// Get returns the event with the given id.
func (r *EventRepository) Get(id string) (model.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		return r.events[i].Clone(), true
	}
	return model.Event{}, false
}

// Create appends a new event with a fresh id and version 1.
func (r *EventRepository) Create(ctx context.Context, details model.EventDetails) model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	details = details.Clone()
	if details.Files == nil {
		details.Files = []model.EventFile{}
	}

	id := r.newID()
	for r.indexOf(id) >= 0 {
		id = r.newID()
	}

	event := model.Event{
		ID:           id,
		Version:      1,
		LastModified: r.stamp(time.Time{}),
		EventDetails: details,
	}
	r.events = append(r.events, event)
	r.blob.save(ctx, r.events)
	return event.Clone()
}

// Update shallow-merges patch into the event, bumps its version and
// timestamp and persists the collection. A missing id is a no-op that
// returns false and writes nothing.
func (r *EventRepository) Update(ctx context.Context, id string, patch model.EventPatch) (model.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Event{}, false
	}

	updated := r.events[i].Clone()
	patch.Apply(&updated.EventDetails)
	updated.Version++
	updated.LastModified = r.stamp(updated.LastModified)

	r.events[i] = updated
	r.blob.save(ctx, r.events)
	return updated.Clone(), true
}

// MarkDistributed adds depts to the event's sent flags and sets its status
// to Distributed in one step, so concurrent distributions never drop each
// other's flags. Flags already set stay set. A missing id returns false.
func (r *EventRepository) MarkDistributed(ctx context.Context, id string, depts []model.Department) (model.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Event{}, false
	}

	updated := r.events[i].Clone()
	if updated.DistributionStatus == nil {
		updated.DistributionStatus = make(map[model.Department]bool, len(depts))
	}
	for _, dept := range depts {
		updated.DistributionStatus[dept] = true
	}
	updated.Status = model.StatusDistributed
	updated.Version++
	updated.LastModified = r.stamp(updated.LastModified)

	r.events[i] = updated
	r.blob.save(ctx, r.events)
	return updated.Clone(), true
}

// Delete removes the event if present and persists the reduced collection.
// It reports whether anything was removed.
func (r *EventRepository) Delete(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.events = append(r.events[:i:i], r.events[i+1:]...)
	r.blob.save(ctx, r.events)
	return true
}

// Dirty reports whether the last write failed, leaving memory ahead of storage.
func (r *EventRepository) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blob.dirty
}

func (r *EventRepository) indexOf(id string) int {
	for i := range r.events {
		if r.events[i].ID == id {
			return i
		}
	}
	return -1
}

// stamp returns the current time, never earlier than prev.
func (r *EventRepository) stamp(prev time.Time) time.Time {
	t := r.now().UTC().Truncate(time.Millisecond)
	if t.Before(prev) {
		return prev
	}
	return t
}
