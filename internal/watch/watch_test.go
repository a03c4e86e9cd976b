package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/phanxgames/nuclea/site"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBroken = errors.New("broken")

// fakeLoad returns content branded with the file's text, or errBroken for
// a file containing "broken".
func fakeLoad(path string) (*site.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if string(data) == "broken" {
		return nil, errBroken
	}
	return &site.Content{Brand: string(data)}, nil
}

func newTestWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, fakeLoad, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.Debounce = 50 * time.Millisecond
	return w, path
}

func waitReload(t *testing.T, w *Watcher) Reload {
	t.Helper()
	select {
	case r := <-w.Reloads:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	return Reload{}
}

func TestWatcher_DetectsChange(t *testing.T) {
	w, path := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := waitReload(t, w)
	if r.Err != nil || r.Content == nil || r.Content.Brand != "v2" {
		t.Errorf("reload = %+v, want brand v2", r)
	}
	if r.Path != w.Path {
		t.Errorf("Path = %q, want %q", r.Path, w.Path)
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	w, path := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for _, v := range []string{"a", "b", "c"} {
		if err := os.WriteFile(path, []byte(v), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	r := waitReload(t, w)
	if r.Content == nil || r.Content.Brand != "c" {
		t.Errorf("reload = %+v, want the last write", r)
	}
	select {
	case extra := <-w.Reloads:
		t.Errorf("unexpected second reload: %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ReportsLoadErrors(t *testing.T) {
	w, path := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := waitReload(t, w)
	if !errors.Is(r.Err, errBroken) || r.Content != nil {
		t.Errorf("reload = %+v, want errBroken", r)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	w, path := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	if err := os.WriteFile(other, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case r := <-w.Reloads:
		t.Errorf("unexpected reload: %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StopClosesChannel(t *testing.T) {
	w, _ := newTestWatcher(t)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	if _, ok := <-w.Reloads; ok {
		t.Error("Reloads should be closed after Stop")
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "gone", "site.yaml"), fakeLoad, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err == nil {
		t.Error("Start should fail for a missing directory")
	}
	w.Stop()
}

func TestWatcher_Run(t *testing.T) {
	w, path := newTestWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// Give Start a moment to register the directory.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("v3"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := waitReload(t, w)
	if r.Content == nil || r.Content.Brand != "v3" {
		t.Errorf("reload = %+v, want brand v3", r)
	}
	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run = %v, want nil", err)
	}
}
