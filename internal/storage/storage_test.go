package storage

import (
	"testing"

	"go.uber.org/zap"
)

// conformance exercises the Storage contract shared by every backend.
func conformance(t *testing.T, st Storage) {
	t.Helper()

	if _, ok := st.Get("session:missing"); ok {
		t.Fatal("missing key reported as present")
	}

	st.Set("session:a", `{"username":"jdoe"}`)
	got, ok := st.Get("session:a")
	if !ok || got != `{"username":"jdoe"}` {
		t.Fatalf("Get after Set = %q, %v", got, ok)
	}

	st.Set("session:a", "replaced")
	if got, _ := st.Get("session:a"); got != "replaced" {
		t.Fatalf("overwrite lost: %q", got)
	}

	// keys with characters a filesystem or SQL layer might mangle
	odd := "session:weird/..\\key %$?"
	st.Set(odd, "value")
	if got, ok := st.Get(odd); !ok || got != "value" {
		t.Fatalf("odd key round trip = %q, %v", got, ok)
	}

	st.Remove("session:a")
	if _, ok := st.Get("session:a"); ok {
		t.Fatal("removed key still present")
	}

	// removing twice must be harmless
	st.Remove("session:a")
	st.Remove("session:never-existed")
}

func TestMemory(t *testing.T) {
	conformance(t, NewMemory())
}

func TestFile(t *testing.T) {
	conformance(t, NewFile(t.TempDir(), zap.NewNop()))
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	NewFile(dir, zap.NewNop()).Set("session:a", "survives")

	got, ok := NewFile(dir, zap.NewNop()).Get("session:a")
	if !ok || got != "survives" {
		t.Fatalf("reopened store lost the value: %q, %v", got, ok)
	}
}

func TestSQLite(t *testing.T) {
	st, err := NewSQLite("", zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	conformance(t, st)
}

func TestSQLitePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewSQLite(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	first.Set("session:a", "survives")
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := NewSQLite(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	got, ok := second.Get("session:a")
	if !ok || got != "survives" {
		t.Fatalf("reopened store lost the value: %q, %v", got, ok)
	}
}
