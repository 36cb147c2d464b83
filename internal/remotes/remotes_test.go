package remotes

import (
	"path/filepath"
	"testing"
)

func TestAddGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, ".embr"))

	if err := m.Add("origin", "s3://bucket/prefix", "EB_AUTH_TOKEN"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	r, err := m.Get("origin")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r.URL != "s3://bucket/prefix" || r.AuthEnv != "EB_AUTH_TOKEN" {
		t.Fatalf("got %+v", r)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, ".embr"))
	if _, err := m.Get("nope"); err == nil {
		t.Fatal("expected error for missing remote")
	}
}

func TestListSortsByName(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, ".embr"))
	m.Add("zeta", "file:///tmp/z", "")
	m.Add("alpha", "file:///tmp/a", "")

	list, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Fatalf("got %+v", list)
	}
}

func TestRemoveTolerance(t *testing.T) {
	dir := t.TempDir()
	m := New(filepath.Join(dir, ".embr"))
	if err := m.Remove("never-existed"); err != nil {
		t.Fatalf("Remove of missing remote should be tolerated: %v", err)
	}
}
