package rstore

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tallykv/tallykv/lib/memory"
	"github.com/tallykv/tallykv/lib/memory/boltmem"
	"github.com/tallykv/tallykv/lib/record"
	"github.com/tallykv/tallykv/lib/store"
)

// testEnv bundles a fresh durable store plus allocator over a temp file.
type testEnv struct {
	manager memory.IManager
	store   store.IRecordStore
	alloc   store.IAllocator
}

func newTestEnv(t *testing.T, path string, opts *Options) *testEnv {
	t.Helper()

	manager, err := boltmem.Open(path, memory.RegionAllocator, memory.RegionRecords)
	if err != nil {
		t.Fatalf("failed to open durable memory: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close() })

	records, err := manager.Region(memory.RegionRecords)
	if err != nil {
		t.Fatal(err)
	}
	counter, err := manager.Region(memory.RegionAllocator)
	if err != nil {
		t.Fatal(err)
	}

	s := New(records, record.NewJSONCodec(), opts)
	return &testEnv{
		manager: manager,
		store:   s,
		alloc:   NewAllocator(counter, s),
	}
}

func testRecord(id uint64, question string) record.Record {
	return record.Record{
		ID:        id,
		Question:  question,
		Options:   []string{"yes", "no"},
		Tally:     record.ZeroTally([]string{"yes", "no"}),
		CreatedAt: 1000,
	}
}

func TestInsertAndGet(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), nil)

	prev, err := env.store.Insert(testRecord(1, "first?"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if prev != nil {
		t.Fatalf("fresh insert returned previous value %+v", prev)
	}

	rec, loaded, err := env.store.Get(1)
	if err != nil || !loaded {
		t.Fatalf("Get: loaded=%v err=%v", loaded, err)
	}
	if rec.Question != "first?" {
		t.Errorf("Question = %q, want %q", rec.Question, "first?")
	}
}

func TestInsertReturnsPrevious(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), nil)

	if _, err := env.store.Insert(testRecord(1, "v1")); err != nil {
		t.Fatal(err)
	}
	prev, err := env.store.Insert(testRecord(1, "v2"))
	if err != nil {
		t.Fatal(err)
	}
	if prev == nil || prev.Question != "v1" {
		t.Fatalf("overwrite returned prev=%+v, want the v1 record", prev)
	}

	rec, _, _ := env.store.Get(1)
	if rec.Question != "v2" {
		t.Errorf("stored record = %q, want the v2 record", rec.Question)
	}
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), nil)

	rec, loaded, err := env.store.Get(404)
	if err != nil {
		t.Fatalf("absence must not be an error at this layer: %v", err)
	}
	if loaded || rec != nil {
		t.Fatalf("Get(404) = (%+v, %v), want (nil, false)", rec, loaded)
	}
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), nil)

	if _, err := env.store.Insert(testRecord(1, "q")); err != nil {
		t.Fatal(err)
	}

	rec, _, _ := env.store.Get(1)
	rec.Tally["yes"] = 99
	rec.Options[0] = "mutated"

	again, _, _ := env.store.Get(1)
	if again.Tally["yes"] != 0 || again.Options[0] != "yes" {
		t.Error("mutating a returned record changed the stored record")
	}
}

func TestScanAllOrderAndRestart(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), nil)

	// Insert out of order, including an id above 255 to catch any non
	// big-endian key encoding.
	for _, id := range []uint64{300, 2, 1} {
		if _, err := env.store.Insert(testRecord(id, "q")); err != nil {
			t.Fatal(err)
		}
	}

	recs, err := env.store.ScanAll()
	if err != nil {
		t.Fatal(err)
	}
	var ids []uint64
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	want := []uint64{1, 2, 300}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("scan order = %v, want %v", ids, want)
		}
	}

	// A fresh scan reflects the current live set.
	if _, err := env.store.Remove(2); err != nil {
		t.Fatal(err)
	}
	recs, err = env.store.ScanAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].ID != 1 || recs[1].ID != 300 {
		t.Fatalf("scan after remove returned ids %v", recs)
	}
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), nil)

	if _, err := env.store.Insert(testRecord(1, "q")); err != nil {
		t.Fatal(err)
	}

	prev, err := env.store.Remove(1)
	if err != nil {
		t.Fatal(err)
	}
	if prev == nil || prev.ID != 1 {
		t.Fatalf("Remove returned %+v, want the removed record", prev)
	}

	if _, loaded, _ := env.store.Get(1); loaded {
		t.Error("record still present after Remove")
	}

	// Removing an absent id yields no previous value and no error.
	prev, err = env.store.Remove(1)
	if err != nil || prev != nil {
		t.Fatalf("Remove(absent) = (%+v, %v)", prev, err)
	}
}

func TestRecordSizeBound(t *testing.T) {
	env := newTestEnv(t, filepath.Join(t.TempDir(), "store.db"), &Options{MaxRecordSize: 128})

	rec := testRecord(1, strings.Repeat("x", 4096))
	_, err := env.store.Insert(rec)
	if err == nil {
		t.Fatal("expected a storage fault for an oversized record")
	}
	if store.CodeOf(err) != store.RetCStorageFault {
		t.Fatalf("error code = %v, want StorageFault", store.CodeOf(err))
	}

	// The fault must not have written anything.
	if loaded, _ := env.store.Has(1); loaded {
		t.Error("oversized record was persisted")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	env := newTestEnv(t, path, nil)
	if _, err := env.store.Insert(testRecord(7, "survives?")); err != nil {
		t.Fatal(err)
	}
	if err := env.manager.Close(); err != nil {
		t.Fatal(err)
	}

	env = newTestEnv(t, path, nil)
	rec, loaded, err := env.store.Get(7)
	if err != nil || !loaded {
		t.Fatalf("record lost across reopen: loaded=%v err=%v", loaded, err)
	}
	if rec.Question != "survives?" {
		t.Errorf("Question = %q after reopen", rec.Question)
	}
}
