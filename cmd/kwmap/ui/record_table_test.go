package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kwmap/internal/record"
	"kwmap/internal/search"
)

func sampleKeywords() []record.Keyword {
	return []record.Keyword{
		{Key: "가방", Rank: 1, Keyword: "가방", SearchVolume: 1000, CompetitionLevel: "높음"},
		{Key: "지갑", Rank: 2, Keyword: "지갑", SearchVolume: 500},
		{Key: "텐트", Rank: 3, Keyword: "텐트", SearchVolume: 1200},
	}
}

func newKeywordTable() *RecordTable[record.Keyword] {
	p := NewRecordTable("Keywords", KeywordColumns(), true, DefaultStyles())
	p.Detail = KeywordDetail
	p.SetSize(100, 20)
	p.Focus()
	return p
}

func TestRecordTable_SetItemsAppliesTerm(t *testing.T) {
	p := newKeywordTable()
	p.SetItems(sampleKeywords())
	assert.Len(t, p.Visible(), 3)

	p.StartFilter()
	changed, _ := p.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("텐")})
	assert.True(t, changed)
	assert.Equal(t, "텐", p.Term())
	assert.True(t, p.Filtering())

	// New data is filtered right away with the current term.
	p.SetItems(sampleKeywords())
	require.Len(t, p.Visible(), 1)
	assert.Equal(t, "텐트", p.Visible()[0].Key)

	assert.True(t, p.StopFilter(true))
	assert.False(t, p.Filtering())
	assert.Equal(t, "", p.Term())
}

func TestRecordTable_CursorFollowsRecord(t *testing.T) {
	p := newKeywordTable()
	p.SetItems(sampleKeywords())
	p.UpdateTable(tea.KeyMsg{Type: tea.KeyDown})
	p.UpdateTable(tea.KeyMsg{Type: tea.KeyDown})

	cur, ok := p.Current()
	require.True(t, ok)
	assert.Equal(t, "텐트", cur.Key)

	p.SetVisible([]record.Keyword{sampleKeywords()[2], sampleKeywords()[0]})
	cur, _ = p.Current()
	assert.Equal(t, "텐트", cur.Key)
	assert.Equal(t, 0, p.Cursor())
}

func TestRecordTable_Marks(t *testing.T) {
	p := newKeywordTable()
	p.SetItems(sampleKeywords())

	assert.True(t, p.Toggle("지갑"))
	assert.True(t, p.Toggle("가방"))
	assert.Equal(t, []string{"지갑", "가방"}, record.Keys(p.Marked()))

	assert.False(t, p.Toggle("지갑"))
	assert.Equal(t, []string{"가방"}, p.MarkedKeys())

	p.SetMarked([]string{"텐트", "gone"})
	assert.Equal(t, []string{"텐트"}, record.Keys(p.Marked()))
	assert.True(t, p.IsMarked("gone"))

	// The count covers every mapped keyword, loaded or not.
	assert.Contains(t, p.View(), "2 selected")
}

func TestRecordTable_SortNumericAndText(t *testing.T) {
	p := newKeywordTable()
	p.SetItems([]record.Keyword{
		{Key: "k9", Rank: 9, Keyword: "b9"},
		{Key: "k10", Rank: 10, Keyword: "b10"},
		{Key: "k1", Rank: 1, Keyword: "a1"},
	})
	p.table.SetCursor(1)

	p.CycleSort()
	assert.Equal(t, []string{"k1", "k9", "k10"}, record.Keys(p.Visible()), "rank orders as a number")
	cur, _ := p.Current()
	assert.Equal(t, "k10", cur.Key, "cursor follows its record")
	assert.Equal(t, 2, p.Cursor())
	by, desc, ok := p.SortedBy()
	assert.True(t, ok)
	assert.False(t, desc)
	assert.Equal(t, "랭킹", by)
	assert.Contains(t, p.View(), "by 랭킹↑")

	p.CycleSort()
	assert.Equal(t, []string{"k10", "k9", "k1"}, record.Keys(p.Visible()))

	p.CycleSort()
	assert.Equal(t, []string{"k1", "k10", "k9"}, record.Keys(p.Visible()), "keyword orders as text")

	// Every column twice, then back to collection order.
	for i := 3; i <= 2*len(KeywordColumns()); i++ {
		p.CycleSort()
	}
	_, _, ok = p.SortedBy()
	assert.False(t, ok)
	assert.Equal(t, []string{"k9", "k10", "k1"}, record.Keys(p.Visible()))
	assert.Equal(t, []string{"k9", "k10", "k1"}, record.Keys(p.Items()), "the collection is never reordered")
}

func TestRecordTable_SortAppliesAfterFilter(t *testing.T) {
	p := newKeywordTable()
	p.SetItems([]record.Keyword{
		{Key: "k9", Rank: 9, Keyword: "b9"},
		{Key: "k10", Rank: 10, Keyword: "b10"},
		{Key: "k1", Rank: 1, Keyword: "a1"},
	})
	p.CycleSort()
	p.CycleSort()

	p.StartFilter()
	p.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	p.SetVisible(search.Filter(p.Items(), p.Term()))
	assert.Equal(t, []string{"k10", "k9"}, record.Keys(p.Visible()))
}

func TestRecordTable_SortPricesStoredAsText(t *testing.T) {
	p := NewRecordTable("Products", ProductColumns(), false, DefaultStyles())
	p.SetItems([]record.Product{
		{Key: "a", MarketPrice: "10000"},
		{Key: "b", MarketPrice: "9000"},
		{Key: "c", MarketPrice: ""},
		{Key: "d", MarketPrice: "1,500"},
	})
	for p.sortCol != 5 {
		p.CycleSort()
	}
	by, _, _ := p.SortedBy()
	require.Equal(t, "시중 판매가", by)
	assert.Equal(t, []string{"c", "d", "b", "a"}, record.Keys(p.Visible()))

	p.CycleSort()
	assert.Equal(t, []string{"a", "b", "d", "c"}, record.Keys(p.Visible()))
}

func TestRecordTable_TermHint(t *testing.T) {
	p := newKeywordTable()
	p.SetItems(sampleKeywords())
	assert.NotContains(t, p.View(), "literal")

	p.StartFilter()
	p.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("가.*")})
	assert.Contains(t, p.View(), "regex")

	p.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("(")})
	assert.Contains(t, p.View(), "literal")
}

func TestRecordTable_EmptyView(t *testing.T) {
	p := NewRecordTable("Products", ProductColumns(), false, DefaultStyles())
	_, ok := p.Current()
	assert.False(t, ok)
	assert.Contains(t, p.View(), "No data")
}

func TestRecordTable_ViewShowsRowsAndDetail(t *testing.T) {
	p := newKeywordTable()
	p.SetItems(sampleKeywords())
	view := p.View()

	assert.Contains(t, view, "Keywords")
	assert.Contains(t, view, "1,000")
	assert.True(t, strings.Contains(view, "가방 · 검색량 1,000"), view)
}

func TestFitColumns(t *testing.T) {
	cols := KeywordColumns()
	assert.Equal(t, len(cols), fitColumns(cols, 500))
	assert.Equal(t, 7, fitColumns(cols, 96))
	assert.Equal(t, 2, fitColumns(cols, 5))
}
