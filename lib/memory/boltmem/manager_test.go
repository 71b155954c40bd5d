package boltmem

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/tallykv/tallykv/lib/memory"
)

func openTestManager(t *testing.T, path string) memory.IManager {
	t.Helper()
	m, err := Open(path, memory.RegionAllocator, memory.RegionRecords)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return m
}

func TestRegionIsolation(t *testing.T) {
	m := openTestManager(t, filepath.Join(t.TempDir(), "mem.db"))
	defer m.Close()

	r0, err := m.Region(memory.RegionAllocator)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := m.Region(memory.RegionRecords)
	if err != nil {
		t.Fatal(err)
	}

	if err := r0.Put([]byte("k"), []byte("zero")); err != nil {
		t.Fatal(err)
	}
	if err := r1.Put([]byte("k"), []byte("one")); err != nil {
		t.Fatal(err)
	}

	v0, ok, err := r0.Get([]byte("k"))
	if err != nil || !ok {
		t.Fatalf("Get region 0: ok=%v err=%v", ok, err)
	}
	v1, ok, err := r1.Get([]byte("k"))
	if err != nil || !ok {
		t.Fatalf("Get region 1: ok=%v err=%v", ok, err)
	}

	if string(v0) != "zero" || string(v1) != "one" {
		t.Fatalf("regions are not isolated: got %q and %q", v0, v1)
	}

	// Deleting in one region must not touch the other.
	if err := r0.Delete([]byte("k")); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := r0.Get([]byte("k")); ok {
		t.Fatal("key still present in region 0 after delete")
	}
	if _, ok, _ := r1.Get([]byte("k")); !ok {
		t.Fatal("delete in region 0 removed key from region 1")
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.db")

	m := openTestManager(t, path)
	r, _ := m.Region(memory.RegionRecords)
	if err := r.Put([]byte("poll"), []byte("payload")); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen simulates a process restart. Init must be idempotent and the
	// contents must survive.
	m = openTestManager(t, path)
	defer m.Close()
	r, _ = m.Region(memory.RegionRecords)

	v, ok, err := r.Get([]byte("poll"))
	if err != nil {
		t.Fatal(err)
	}
	if !ok || !bytes.Equal(v, []byte("payload")) {
		t.Fatalf("value did not survive reopen: ok=%v v=%q", ok, v)
	}
}

func TestGetReturnsIndependentCopy(t *testing.T) {
	m := openTestManager(t, filepath.Join(t.TempDir(), "mem.db"))
	defer m.Close()

	r, _ := m.Region(memory.RegionRecords)
	if err := r.Put([]byte("k"), []byte("original")); err != nil {
		t.Fatal(err)
	}

	v, _, err := r.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	copy(v, "XXXXXXXX")

	v2, _, err := r.Get([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	if string(v2) != "original" {
		t.Fatalf("mutating a returned value changed the stored value: %q", v2)
	}
}

func TestAscendOrder(t *testing.T) {
	m := openTestManager(t, filepath.Join(t.TempDir(), "mem.db"))
	defer m.Close()

	r, _ := m.Region(memory.RegionRecords)
	// Insert out of order, iteration must come back sorted.
	for _, k := range []string{"c", "a", "b"} {
		if err := r.Put([]byte(k), []byte(k)); err != nil {
			t.Fatal(err)
		}
	}

	var keys []string
	err := r.Ascend(func(k, _ []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("Ascend order = %v, want %v", keys, want)
		}
	}
}

func TestUndeclaredRegion(t *testing.T) {
	m := openTestManager(t, filepath.Join(t.TempDir(), "mem.db"))
	defer m.Close()

	if _, err := m.Region(memory.RegionID(42)); err == nil {
		t.Fatal("expected error for undeclared region")
	}
}
