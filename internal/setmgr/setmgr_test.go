package setmgr

import (
	"path/filepath"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return New(filepath.Join(t.TempDir(), ".embr"))
}

func TestCurrentSelfHealsToMain(t *testing.T) {
	m := newTestManager(t)
	name, err := m.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if name != DefaultSet {
		t.Fatalf("Current = %q, want %q", name, DefaultSet)
	}
	if !m.Exists(DefaultSet) {
		t.Fatal("main set was not created")
	}
}

func TestCreateThenSwitchUpdatesCurrent(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Current(); err != nil { // creates main, sets HEAD
		t.Fatalf("Current: %v", err)
	}
	if err := m.Create("experiment", "trying clip-vit", "main"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Switch("experiment"); err != nil {
		t.Fatalf("Switch: %v", err)
	}
	name, err := m.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if name != "experiment" {
		t.Fatalf("Current = %q, want experiment", name)
	}
}

func TestCreateRejectsInvalidName(t *testing.T) {
	m := newTestManager(t)
	if err := m.Create("has space", "", ""); !ebterr.Is(err, ebterr.KindInvalidInput) {
		t.Fatalf("Create(\"has space\") err = %v, want InvalidInput", err)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	m := newTestManager(t)
	if err := m.Create("exp", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Create("exp", "", ""); !ebterr.Is(err, ebterr.KindAlreadyExists) {
		t.Fatalf("second Create err = %v, want AlreadyExists", err)
	}
}

func TestDeleteRefusesCurrentSet(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if _, err := m.Delete(DefaultSet, false); !ebterr.Is(err, ebterr.KindInvalidInput) {
		t.Fatalf("Delete(main) err = %v, want InvalidInput", err)
	}
}

func TestDeleteRemovesNonCurrentSet(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if err := m.Create("scratch", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if warn, err := m.Delete("scratch", true); err != nil || warn != "" {
		t.Fatalf("Delete: warn=%q err=%v", warn, err)
	}
	if m.Exists("scratch") {
		t.Fatal("scratch set still exists after Delete")
	}
}

func TestMergeUnionKeepsTargetOnConflict(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if err := m.Create("feature", "", "main"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := m.WriteRef("main", "doc.txt", "aaaa"); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}
	if err := m.WriteRef("feature", "doc.txt", "bbbb"); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}
	if err := m.WriteRef("feature", "new.txt", "cccc"); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}

	copied, err := m.Merge("feature", "main", StrategyUnion)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if copied != 1 {
		t.Fatalf("copied = %d, want 1", copied)
	}

	got, err := m.ReadRef("main", "doc.txt")
	if err != nil {
		t.Fatalf("ReadRef: %v", err)
	}
	if got != "aaaa" {
		t.Fatalf("main doc.txt ref = %q, want aaaa (union keeps target)", got)
	}

	got, err = m.ReadRef("main", "new.txt")
	if err != nil {
		t.Fatalf("ReadRef: %v", err)
	}
	if got != "cccc" {
		t.Fatalf("main new.txt ref = %q, want cccc", got)
	}
}

func TestMergeWeightedIsUnimplemented(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if err := m.Create("feature", "", "main"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.WriteRef("main", "doc.txt", "aaaa"); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}
	if err := m.WriteRef("feature", "doc.txt", "bbbb"); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}

	if _, err := m.Merge("feature", "main", StrategyWeighted); !ebterr.Is(err, ebterr.KindUnimplemented) {
		t.Fatalf("Merge(weighted) err = %v, want Unimplemented", err)
	}
}
