package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireAndClose(t *testing.T) {
	ws, err := Acquire("")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	dir := ws.Dir()

	if err := os.WriteFile(ws.Path("input.typ"), []byte("x"), 0644); err != nil {
		t.Fatalf("write into workspace: %v", err)
	}
	if got, want := ws.Path("input.typ"), filepath.Join(dir, "input.typ"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("directory %q still exists after Close (stat err = %v)", dir, err)
	}

	// Second close is a no-op.
	if err := ws.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestKeep(t *testing.T) {
	ws, err := Acquire("keep-test-*")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	dir := ws.Dir()
	t.Cleanup(func() { os.RemoveAll(dir) })

	ws.Keep()
	if err := ws.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("kept directory is gone: %v", err)
	}
}

func TestIsolation(t *testing.T) {
	a, err := Acquire("")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := Acquire("")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if a.Dir() == b.Dir() {
		t.Errorf("two workspaces share directory %q", a.Dir())
	}
}
