package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/beoflow/internal/kv"
)

// blob reads and writes one JSON value under one key. It is not safe for
// concurrent use; the owning store serialises access.
type blob struct {
	store kv.Store
	key   string
	name  string
	log   logrus.FieldLogger
	dirty bool
}

func newBlob(store kv.Store, key, name string, log logrus.FieldLogger) *blob {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &blob{
		store: store,
		key:   key,
		name:  name,
		log:   log.WithFields(logrus.Fields{"store": name, "key": key}),
	}
}

// load returns the raw blob, or false when it is absent or unreadable.
// Read errors are logged and never surfaced.
func (b *blob) load(ctx context.Context) ([]byte, bool) {
	raw, err := b.store.Get(ctx, b.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			storeLoadFailures.WithLabelValues(b.name).Inc()
			b.log.WithError(err).Warn("failed to load blob, using defaults")
		}
		return nil, false
	}
	return []byte(raw), true
}

// corrupt records a blob that was read but could not be decoded.
func (b *blob) corrupt(err error) {
	storeLoadFailures.WithLabelValues(b.name).Inc()
	b.log.WithError(err).Warn("failed to decode blob, using defaults")
}

// save rewrites the whole value. A failure is logged and leaves the blob
// dirty: the caller's in-memory state is newer than what is persisted until
// the next successful save.
func (b *blob) save(ctx context.Context, v any) {
	data, err := json.Marshal(v)
	if err == nil {
		err = b.store.Set(ctx, b.key, string(data))
	}
	if err != nil {
		b.dirty = true
		storeWrites.WithLabelValues(b.name, "error").Inc()
		storeDirty.WithLabelValues(b.name).Set(1)
		b.log.WithError(err).Error("failed to persist blob, keeping in-memory state")
		return
	}
	b.dirty = false
	storeWrites.WithLabelValues(b.name, "ok").Inc()
	storeDirty.WithLabelValues(b.name).Set(0)
}
