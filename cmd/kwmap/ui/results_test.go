package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kwmap/internal/mapping"
	"kwmap/internal/record"
)

func entry(product string, keywords ...string) mapping.Entry {
	e := mapping.Entry{Key: product, Product: record.Product{Key: product, ID: product, Name: "name " + product}}
	for _, k := range keywords {
		e.Keywords = append(e.Keywords, record.Keyword{Key: k, Keyword: k})
	}
	return e
}

func TestResults_Navigation(t *testing.T) {
	r := NewResults(DefaultStyles())
	r.SetSize(60, 20)
	r.SetEntries([]mapping.Entry{entry("p1", "a", "b", "c"), entry("p2", "x")})

	p, k, ok := r.Current()
	assert.True(t, ok)
	assert.Equal(t, "p1", p)
	assert.Equal(t, "a", k)

	r.Right()
	r.Right()
	r.Right()
	_, k, _ = r.Current()
	assert.Equal(t, "c", k)

	n, ok := r.Neighbor(-1)
	assert.True(t, ok)
	assert.Equal(t, "b", n)
	_, ok = r.Neighbor(1)
	assert.False(t, ok)

	r.Down()
	p, k, _ = r.Current()
	assert.Equal(t, "p2", p)
	assert.Equal(t, "x", k, "keyword cursor clamps to the shorter entry")

	r.Up()
	r.Left()
	p, _, _ = r.Current()
	assert.Equal(t, "p1", p)
}

func TestResults_CursorSurvivesUpdates(t *testing.T) {
	r := NewResults(DefaultStyles())
	r.SetEntries([]mapping.Entry{entry("p1", "a"), entry("p2", "x", "y")})
	r.FocusEntry("p2")
	r.FocusKeyword("y")

	r.SetEntries([]mapping.Entry{entry("p2", "y", "x")})
	p, k, _ := r.Current()
	assert.Equal(t, "p2", p)
	assert.Equal(t, "y", k)

	r.SetEntries([]mapping.Entry{entry("p2", "x")})
	_, k, _ = r.Current()
	assert.Equal(t, "x", k)

	r.SetEntries(nil)
	_, _, ok := r.Current()
	assert.False(t, ok)
	assert.Contains(t, r.View(), "0 mapped")
}

func TestResults_RemovedKeywordHandsCursorToNext(t *testing.T) {
	r := NewResults(DefaultStyles())
	r.SetEntries([]mapping.Entry{entry("p1", "a"), entry("p2", "x", "y", "z")})
	r.FocusEntry("p2")
	r.FocusKeyword("y")

	r.SetEntries([]mapping.Entry{entry("p1", "a"), entry("p2", "x", "z")})
	p, k, _ := r.Current()
	assert.Equal(t, "p2", p)
	assert.Equal(t, "z", k)

	r.SetEntries([]mapping.Entry{entry("p1", "a"), entry("p2", "x")})
	_, k, _ = r.Current()
	assert.Equal(t, "x", k, "last keyword removed: cursor clamps to the new last")

	// The entry itself is gone: the cursor stays at its row.
	r.SetEntries([]mapping.Entry{entry("p1", "a"), entry("p3", "m", "n")})
	p, k, _ = r.Current()
	assert.Equal(t, "p3", p)
	assert.Equal(t, "m", k)

	r.SetEntries([]mapping.Entry{entry("p1", "a")})
	p, _, _ = r.Current()
	assert.Equal(t, "p1", p)
}

func TestResults_View(t *testing.T) {
	r := NewResults(DefaultStyles())
	r.SetSize(60, 20)
	r.SetEntries([]mapping.Entry{entry("p1", "가방", "지갑")})
	r.Focus()

	view := r.View()
	assert.Contains(t, view, "name p1 (p1) · 2")
	assert.Contains(t, view, "가방")
	assert.Contains(t, view, "지갑")
}

func TestWrapTags(t *testing.T) {
	got := wrapTags([]string{"aaaa", "bbbb", "cccc"}, 9)
	assert.Equal(t, "  aaaa bbbb\n  cccc", got)
}
