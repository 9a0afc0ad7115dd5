package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"kwmap/internal/record"
	"kwmap/internal/sheet"
)

func TestWatcher_ReportsRewrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := writeWorkbook(t, "keywords.xlsx", record.KeywordSchema().Grid(testKeywords))
	w, err := NewWatcher(80*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(KindKeyword, path))

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("x"), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, sheet.WriteFile(path, record.KeywordSchema().Grid(testKeywords[:1])))
	}

	select {
	case ch := <-w.Changes():
		assert.Equal(t, KindKeyword, ch.Kind)
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, ch.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case ch := <-w.Changes():
		t.Fatalf("burst was not coalesced: extra %+v", ch)
	case <-time.After(250 * time.Millisecond):
	}
}

func TestWatcher_ReplacesPathOfSameKind(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	old := writeWorkbook(t, "old.xlsx", record.ProductSchema().Grid(testProducts))
	current := writeWorkbook(t, "new.xlsx", record.ProductSchema().Grid(testProducts))

	w, err := NewWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Watch(KindProduct, old))
	require.NoError(t, w.Watch(KindProduct, current))

	require.NoError(t, sheet.WriteFile(old, record.ProductSchema().Grid(testProducts[:1])))
	select {
	case ch := <-w.Changes():
		t.Fatalf("replaced path still reported: %+v", ch)
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcher_CloseClosesChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := writeWorkbook(t, "keywords.xlsx", record.KeywordSchema().Grid(testKeywords))
	w, err := NewWatcher(5*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Watch(KindKeyword, path))

	// A reader blocked on Changes must be released by Close.
	released := make(chan bool)
	go func() {
		for range w.Changes() {
		}
		released <- true
	}()

	require.NoError(t, sheet.WriteFile(path, record.KeywordSchema().Grid(testKeywords[:1])))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, w.Close())

	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("Changes still open after Close")
	}
	_, ok := <-w.Changes()
	assert.False(t, ok)
}
