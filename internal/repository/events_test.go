package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Shivanand-hulikatti/beoflow/internal/kv"
	"github.com/Shivanand-hulikatti/beoflow/internal/model"
)

// flakyStore wraps a kv.Store and fails writes while failing is set.
type flakyStore struct {
	kv.Store
	mu      sync.Mutex
	failing bool
	writes  int
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failing {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

// stepClock returns t0, t0+1s, t0+2s, ... on successive calls.
func stepClock(t0 time.Time) func() time.Time {
	var n int
	return func() time.Time {
		t := t0.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

func quietLogger() *logrus.Logger {
	log, _ := test.NewNullLogger()
	return log
}

func TestCreateAssignsIdentityAndPersists(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewEventRepository(ctx, store, quietLogger(), WithClock(stepClock(t0)))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ev := repo.Create(ctx, model.EventDetails{EventName: fmt.Sprintf("event-%d", i), Status: model.StatusDraft})
		if ev.Version != 1 {
			t.Fatalf("expected version 1, got %d", ev.Version)
		}
		if ev.ID == "" || seen[ev.ID] {
			t.Fatalf("id %q empty or reused", ev.ID)
		}
		seen[ev.ID] = true
	}

	raw, err := store.Get(ctx, EventsKey)
	if err != nil {
		t.Fatalf("get blob: %v", err)
	}
	var persisted []model.Event
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("decode blob: %v", err)
	}
	if len(persisted) != 20 {
		t.Fatalf("expected 20 persisted events, got %d", len(persisted))
	}
	if persisted[0].EventName != "event-0" || persisted[19].EventName != "event-19" {
		t.Fatalf("unexpected insertion order: %q .. %q", persisted[0].EventName, persisted[19].EventName)
	}
}

func TestCreateRegeneratesCollidingID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"a", "a", "b"}
	var n int
	repo := NewEventRepository(ctx, kv.NewMemory(), quietLogger(), WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))

	first := repo.Create(ctx, model.EventDetails{EventName: "one"})
	second := repo.Create(ctx, model.EventDetails{EventName: "two"})
	if first.ID != "a" || second.ID != "b" {
		t.Fatalf("expected ids a and b, got %q and %q", first.ID, second.ID)
	}
}

func TestUpdateBumpsVersionAndMergesShallowly(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewEventRepository(ctx, kv.NewMemory(), quietLogger(), WithClock(stepClock(t0)))

	created := repo.Create(ctx, model.EventDetails{
		EventName:          "Smith Wedding",
		GuaranteedGuests:   100,
		Status:             model.StatusDraft,
		DistributionStatus: map[model.Department]bool{model.DepartmentKitchen: true, model.DepartmentSales: true},
	})

	updated, ok := repo.Update(ctx, created.ID, model.EventPatch{
		Status:             model.StatusPtr(model.StatusApproved),
		DistributionStatus: map[model.Department]bool{model.DepartmentSecurity: true},
	})
	if !ok {
		t.Fatal("expected update to find the event")
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}
	if updated.Status != model.StatusApproved || updated.EventName != "Smith Wedding" || updated.GuaranteedGuests != 100 {
		t.Fatalf("unexpected merge result: %+v", updated.EventDetails)
	}
	if !updated.LastModified.After(created.LastModified) {
		t.Fatalf("lastModified did not advance: %v -> %v", created.LastModified, updated.LastModified)
	}
	// Nested maps are replaced, not merged.
	want := map[model.Department]bool{model.DepartmentSecurity: true}
	if !reflect.DeepEqual(updated.DistributionStatus, want) {
		t.Fatalf("distributionStatus = %v, want %v", updated.DistributionStatus, want)
	}
}

func TestUpdateKeepsTimestampMonotonicWhenClockStepsBack(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{t0, t0.Add(-time.Hour)}
	var n int
	repo := NewEventRepository(ctx, kv.NewMemory(), quietLogger(), WithClock(func() time.Time {
		tm := times[n]
		n++
		return tm
	}))

	created := repo.Create(ctx, model.EventDetails{EventName: "x"})
	updated, _ := repo.Update(ctx, created.ID, model.EventPatch{})
	if updated.LastModified.Before(created.LastModified) {
		t.Fatalf("lastModified went backwards: %v -> %v", created.LastModified, updated.LastModified)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}
}

func TestUpdateMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: kv.NewMemory()}
	repo := NewEventRepository(ctx, store, quietLogger())
	repo.Create(ctx, model.EventDetails{EventName: "kept"})
	before := repo.List()
	writes := store.writes

	if _, ok := repo.Update(ctx, "missing", model.EventPatch{Status: model.StatusPtr(model.StatusApproved)}); ok {
		t.Fatal("expected update of missing id to report false")
	}
	if !reflect.DeepEqual(repo.List(), before) {
		t.Fatal("collection changed after no-op update")
	}
	if store.writes != writes {
		t.Fatalf("no-op update wrote to storage")
	}
}

func TestMarkDistributedUnionsFlags(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: kv.NewMemory()}
	repo := NewEventRepository(ctx, store, quietLogger())
	ev := repo.Create(ctx, model.EventDetails{
		EventName:          "Gala",
		DistributionStatus: map[model.Department]bool{model.DepartmentSales: true},
	})

	got, ok := repo.MarkDistributed(ctx, ev.ID, []model.Department{model.DepartmentKitchen})
	if !ok {
		t.Fatal("expected mark to report true")
	}
	want := map[model.Department]bool{model.DepartmentSales: true, model.DepartmentKitchen: true}
	if !reflect.DeepEqual(got.DistributionStatus, want) {
		t.Fatalf("distributionStatus = %v, want %v", got.DistributionStatus, want)
	}
	if got.Status != model.StatusDistributed || got.Version != 2 {
		t.Fatalf("unexpected event: status=%q version=%d", got.Status, got.Version)
	}

	reloaded := NewEventRepository(ctx, store, quietLogger())
	if stored, _ := reloaded.Get(ev.ID); !reflect.DeepEqual(stored.DistributionStatus, want) {
		t.Fatalf("persisted flags = %v, want %v", stored.DistributionStatus, want)
	}

	writes := store.writes
	if _, ok := repo.MarkDistributed(ctx, "missing", []model.Department{model.DepartmentKitchen}); ok {
		t.Fatal("expected mark of missing id to report false")
	}
	if store.writes != writes {
		t.Fatal("marking a missing id wrote to storage")
	}
}

func TestConcurrentMarkDistributedKeepsEveryFlag(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(ctx, kv.NewMemory(), quietLogger())
	ev := repo.Create(ctx, model.EventDetails{EventName: "Gala"})

	var wg sync.WaitGroup
	for _, dept := range model.Departments() {
		wg.Add(1)
		go func(dept model.Department) {
			defer wg.Done()
			repo.MarkDistributed(ctx, ev.ID, []model.Department{dept})
		}(dept)
	}
	wg.Wait()

	got, _ := repo.Get(ev.ID)
	if len(got.DistributionStatus) != len(model.Departments()) {
		t.Fatalf("expected every department flagged, got %v", got.DistributionStatus)
	}
	if want := 1 + len(model.Departments()); got.Version != want {
		t.Fatalf("version = %d, want %d", got.Version, want)
	}
}

func TestDeleteRemovesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewEventRepository(ctx, store, quietLogger())
	a := repo.Create(ctx, model.EventDetails{EventName: "a"})
	b := repo.Create(ctx, model.EventDetails{EventName: "b"})

	if !repo.Delete(ctx, a.ID) {
		t.Fatal("expected delete to report true")
	}
	if repo.Delete(ctx, "missing") {
		t.Fatal("expected delete of missing id to report false")
	}
	if _, ok := repo.Get(a.ID); ok {
		t.Fatal("deleted event still present")
	}

	reloaded := NewEventRepository(ctx, store, quietLogger())
	list := reloaded.List()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("unexpected persisted collection: %+v", list)
	}
}

func TestListAndGetReturnCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(ctx, kv.NewMemory(), quietLogger())
	ev := repo.Create(ctx, model.EventDetails{
		EventName:          "copy",
		DistributionStatus: map[model.Department]bool{model.DepartmentKitchen: true},
	})

	got, _ := repo.Get(ev.ID)
	got.DistributionStatus[model.DepartmentSales] = true
	got.EventName = "mutated"

	again, _ := repo.Get(ev.ID)
	if again.EventName != "copy" || again.DistributionStatus[model.DepartmentSales] {
		t.Fatalf("store state leaked through Get: %+v", again.EventDetails)
	}
}

func TestLoadFallsBackOnCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	if err := store.Set(ctx, EventsKey, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	log, hook := test.NewNullLogger()

	repo := NewEventRepository(ctx, store, log)
	if n := len(repo.List()); n != 0 {
		t.Fatalf("expected empty collection, got %d", n)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatal("expected a warning about the corrupt blob")
	}
}

func TestWriteFailureKeepsMemoryAndMarksDirty(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: kv.NewMemory()}
	log, hook := test.NewNullLogger()
	repo := NewEventRepository(ctx, store, log)

	store.setFailing(true)
	ev := repo.Create(ctx, model.EventDetails{EventName: "unsaved"})
	if _, ok := repo.Get(ev.ID); !ok {
		t.Fatal("in-memory state should keep the event after a failed write")
	}
	if !repo.Dirty() {
		t.Fatal("expected store to be dirty after failed write")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
		t.Fatal("expected the write failure to be logged at error level")
	}
	if _, err := store.Get(ctx, EventsKey); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("nothing should be persisted yet, got err=%v", err)
	}

	store.setFailing(false)
	repo.Update(ctx, ev.ID, model.EventPatch{})
	if repo.Dirty() {
		t.Fatal("successful write should clear the dirty flag")
	}
	reloaded := NewEventRepository(ctx, store, quietLogger())
	if _, ok := reloaded.Get(ev.ID); !ok {
		t.Fatal("event should be persisted after the next successful write")
	}
}

func TestEventRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewEventRepository(ctx, store, quietLogger())
	ev := repo.Create(ctx, model.EventDetails{
		Status:           model.StatusPendingApproval,
		EventName:        "Gala",
		ClientName:       "Acme",
		ContactEmail:     "ops@acme.test",
		ExpectedGuests:   250,
		GuaranteedGuests: 200,
		Files:            []model.EventFile{{Name: "floor.pdf", URL: "blob:1", Type: "application/pdf"}},
		DistributionStatus: map[model.Department]bool{
			model.DepartmentAV: true,
		},
	})

	reloaded := NewEventRepository(ctx, store, quietLogger())
	got, ok := reloaded.Get(ev.ID)
	if !ok {
		t.Fatal("event missing after reload")
	}
	if !got.LastModified.Equal(ev.LastModified) {
		t.Fatalf("lastModified changed: %v vs %v", got.LastModified, ev.LastModified)
	}
	got.LastModified = ev.LastModified
	if !reflect.DeepEqual(got, ev) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, ev)
	}
}
