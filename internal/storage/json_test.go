package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pvdberg/listmotion/internal/model"
)

func TestLoadMissingFileReturnsEmptyList(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list.Tasks) != 0 {
		t.Errorf("Expected empty list, got %d tasks", len(list.Tasks))
	}
	if store.FileExists() {
		t.Errorf("FileExists should be false for a missing file")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	store := NewJSONStore(path)

	list := model.NewTaskList()
	a := model.NewTask("write report")
	b := model.NewTask("review patch")
	b.Done = true
	list.Add(a)
	list.Add(b)

	if err := store.Save(list); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !store.FileExists() {
		t.Fatal("FileExists should be true after Save")
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(loaded.Tasks))
	}
	if loaded.Tasks[0].ID != a.ID || loaded.Tasks[0].Text != "write report" {
		t.Errorf("First task did not round-trip: %+v", loaded.Tasks[0])
	}
	if !loaded.Tasks[1].Done {
		t.Errorf("Done flag did not round-trip")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(path)
	if _, err := store.Load(); err == nil {
		t.Errorf("Load should fail on malformed JSON")
	}
}
