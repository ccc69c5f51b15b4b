package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/beoflow/internal/kv"
	"github.com/Shivanand-hulikatti/beoflow/internal/model"
)

// SettingsRepository owns the global settings singleton, persisted as one
// blob under SettingsKey.
type SettingsRepository struct {
	mu       sync.Mutex
	settings model.Settings
	blob     *blob
}

// NewSettingsRepository constructs the store and loads the persisted
// settings over the built-in defaults.
func NewSettingsRepository(ctx context.Context, store kv.Store, log logrus.FieldLogger) *SettingsRepository {
	r := &SettingsRepository{
		settings: model.DefaultSettings(),
		blob:     newBlob(store, SettingsKey, "settings", log),
	}

	if raw, ok := r.blob.load(ctx); ok {
		merged, err := mergeSettings(model.DefaultSettings(), raw)
		if err != nil {
			r.blob.corrupt(err)
		} else {
			r.settings = merged
		}
	}
	return r
}

// Get returns a copy of the current settings.
func (r *SettingsRepository) Get() model.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings.Clone()
}

// UpdateDepartmentEmail replaces one department's email and nothing else.
func (r *SettingsRepository) UpdateDepartmentEmail(ctx context.Context, dept model.Department, email string) model.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.settings.Clone()
	if next.DepartmentInfo == nil {
		next.DepartmentInfo = make(map[model.Department]model.DepartmentInfo)
	}
	info := next.DepartmentInfo[dept]
	info.Email = email
	next.DepartmentInfo[dept] = info

	r.settings = next
	r.blob.save(ctx, r.settings)
	return r.settings.Clone()
}

// UpdateSettings replaces every top-level key present in patch.
func (r *SettingsRepository) UpdateSettings(ctx context.Context, patch model.SettingsPatch) model.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.settings.Clone()
	patch.Apply(&next)

	r.settings = next
	r.blob.save(ctx, r.settings)
	return r.settings.Clone()
}

// Dirty reports whether the last write failed, leaving memory ahead of storage.
func (r *SettingsRepository) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blob.dirty
}

// mergeSettings overlays the top-level keys of raw onto base. A key that is
// present replaces the default wholesale; missing or null keys keep it.
func mergeSettings(base model.Settings, raw []byte) (model.Settings, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	fields := map[string]any{
		"departmentInfo":  &base.DepartmentInfo,
		"eventTypes":      &base.EventTypes,
		"venues":          &base.Venues,
		"menuOptions":     &base.MenuOptions,
		"beverageOptions": &base.BeverageOptions,
	}
	for key, dst := range fields {
		val, ok := top[key]
		// A persisted null keeps the default rather than clearing the key.
		if !ok || string(val) == "null" {
			continue
		}
		// Decode into a zero value so a persisted map replaces the default
		// instead of being merged key by key.
		switch d := dst.(type) {
		case *map[model.Department]model.DepartmentInfo:
			var m map[model.Department]model.DepartmentInfo
			if err := json.Unmarshal(val, &m); err != nil {
				return model.Settings{}, fmt.Errorf("decode settings %s: %w", key, err)
			}
			*d = m
		case *[]string:
			var list []string
			if err := json.Unmarshal(val, &list); err != nil {
				return model.Settings{}, fmt.Errorf("decode settings %s: %w", key, err)
			}
			*d = list
		}
	}
	return base, nil
}
