package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) UIStateStore {
	t.Helper()
	s, err := NewBboltStateStore(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStateStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	filters := map[string]string{"type_id": "Repair"}
	if err := s.Set(KeyActiveFilters, filters); err != nil {
		t.Fatalf("set filters: %v", err)
	}
	if err := s.Set(KeySearchText, "pump"); err != nil {
		t.Fatalf("set search: %v", err)
	}
	if err := s.Set(KeyCurrentPage, 3); err != nil {
		t.Fatalf("set page: %v", err)
	}

	var gotFilters map[string]string
	ok, err := s.Get(KeyActiveFilters, &gotFilters)
	if err != nil || !ok {
		t.Fatalf("get filters: ok=%v err=%v", ok, err)
	}
	if gotFilters["type_id"] != "Repair" {
		t.Fatalf("expected Repair filter, got %v", gotFilters)
	}

	var gotSearch string
	if ok, err := s.Get(KeySearchText, &gotSearch); err != nil || !ok || gotSearch != "pump" {
		t.Fatalf("get search: ok=%v err=%v value=%q", ok, err, gotSearch)
	}

	var gotPage int
	if ok, err := s.Get(KeyCurrentPage, &gotPage); err != nil || !ok || gotPage != 3 {
		t.Fatalf("get page: ok=%v err=%v value=%d", ok, err, gotPage)
	}
}

func TestStateStoreMissingKey(t *testing.T) {
	s := openTestStore(t)
	var value string
	ok, err := s.Get(KeySearchText, &value)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected missing key")
	}
}

func TestStateStoreDeleteRemovesKeys(t *testing.T) {
	s := openTestStore(t)
	if err := s.Set(KeySearchText, "valve"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Delete(KeySearchText, KeyActiveFilters); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var value string
	if ok, _ := s.Get(KeySearchText, &value); ok {
		t.Fatalf("expected key deleted")
	}
}
