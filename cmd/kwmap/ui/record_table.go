package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kwmap/internal/record"
	"kwmap/internal/search"
)

// Row markers
const (
	markOn  = "✓"
	markCur = "●"
)

// Sort direction arrows
const (
	arrowAsc  = "↑"
	arrowDesc = "↓"
)

// RecordTable is a searchable table of records with marked rows. In multi
// mode any number of rows can be marked; otherwise the one mark shows the
// current selection.
type RecordTable[T record.Record] struct {
	Title  string
	Detail func(T) string

	columns []Column[T]
	shown   int // leading columns that fit the pane width
	multi   bool

	table   table.Model
	filter  textinput.Model
	all     []T
	rows    []T      // last filter result, in collection order
	visible []T      // rows as sorted
	marks   []string // keys in mark order

	sortCol  int // -1 for collection order
	sortDesc bool

	focused bool
	width   int
	height  int
	styles  Styles
}

// NewRecordTable creates an empty pane.
func NewRecordTable[T record.Record](title string, columns []Column[T], multi bool, styles Styles) *RecordTable[T] {
	t := table.New(
		table.WithColumns(sortedColumns(columns, -1, false)),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderForeground(styles.Theme.Border).
		Foreground(styles.Theme.Primary).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Theme.Background).
		Background(styles.Theme.Primary).
		Bold(false)
	t.SetStyles(ts)

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "search (regex)"
	fi.CharLimit = 100

	return &RecordTable[T]{
		Title:   title,
		columns: columns,
		shown:   len(columns),
		multi:   multi,
		table:   t,
		filter:  fi,
		sortCol: -1,
		styles:  styles,
	}
}

// sortedColumns marks the sort column title with its direction.
func sortedColumns[T any](columns []Column[T], sortCol int, desc bool) []table.Column {
	out := make([]table.Column, 0, len(columns)+1)
	out = append(out, table.Column{Title: " ", Width: 1})
	for i, c := range columns {
		title := c.Title
		if i == sortCol {
			title += sortArrow(desc)
		}
		out = append(out, table.Column{Title: title, Width: c.Width})
	}
	return out
}

func sortArrow(desc bool) string {
	if desc {
		return arrowDesc
	}
	return arrowAsc
}

// SetItems replaces the collection and re-applies the current term now.
func (p *RecordTable[T]) SetItems(items []T) {
	p.all = items
	p.SetVisible(search.Filter(items, p.Term()))
}

// SetVisible shows items, typically a debounced search result, in the
// current sort order. The cursor stays on the same record when it is
// still visible.
func (p *RecordTable[T]) SetVisible(items []T) {
	p.show(items, p.currentKey())
}

func (p *RecordTable[T]) currentKey() string {
	if cur, ok := p.Current(); ok {
		return cur.RecordKey()
	}
	return ""
}

func (p *RecordTable[T]) show(items []T, curKey string) {
	p.rows = items
	p.visible = p.sorted(items)
	p.refreshRows()

	cursor := 0
	for i, it := range p.visible {
		if it.RecordKey() == curKey {
			cursor = i
			break
		}
	}
	p.table.SetCursor(cursor)
}

// sorted returns items in sort order. items itself is never reordered
// since it may be the collection.
func (p *RecordTable[T]) sorted(items []T) []T {
	if p.sortCol < 0 || p.sortCol >= len(p.columns) {
		return items
	}
	col := p.columns[p.sortCol]
	coll := newCollator()
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		if p.sortDesc {
			return col.Compare(coll, b, a)
		}
		return col.Compare(coll, a, b)
	})
	return out
}

// CycleSort steps the sort through each column ascending then descending,
// and back to collection order after the last one.
func (p *RecordTable[T]) CycleSort() {
	switch {
	case p.sortCol < 0:
		p.sortCol, p.sortDesc = 0, false
	case !p.sortDesc:
		p.sortDesc = true
	case p.sortCol+1 < len(p.columns):
		p.sortCol, p.sortDesc = p.sortCol+1, false
	default:
		p.sortCol, p.sortDesc = -1, false
	}
	curKey := p.currentKey()
	p.table.SetRows(nil)
	p.table.SetColumns(sortedColumns(p.columns[:p.shown], p.sortCol, p.sortDesc))
	p.show(p.rows, curKey)
}

// SortedBy returns the sort column title and direction. ok is false in
// collection order.
func (p *RecordTable[T]) SortedBy() (title string, desc, ok bool) {
	if p.sortCol < 0 || p.sortCol >= len(p.columns) {
		return "", false, false
	}
	return p.columns[p.sortCol].Title, p.sortDesc, true
}

// Items returns the full collection.
func (p *RecordTable[T]) Items() []T { return p.all }

// Visible returns the rows currently shown.
func (p *RecordTable[T]) Visible() []T { return p.visible }

// Term returns the search term.
func (p *RecordTable[T]) Term() string { return p.filter.Value() }

// Filtering reports whether the search box has focus.
func (p *RecordTable[T]) Filtering() bool { return p.filter.Focused() }

// StartFilter focuses the search box.
func (p *RecordTable[T]) StartFilter() tea.Cmd {
	return p.filter.Focus()
}

// StopFilter blurs the search box, optionally clearing the term. It
// reports whether the term changed.
func (p *RecordTable[T]) StopFilter(clear bool) bool {
	p.filter.Blur()
	if clear && p.filter.Value() != "" {
		p.filter.SetValue("")
		return true
	}
	return false
}

// UpdateFilter feeds msg to the search box and reports whether the term
// changed.
func (p *RecordTable[T]) UpdateFilter(msg tea.Msg) (bool, tea.Cmd) {
	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	return p.filter.Value() != before, cmd
}

// UpdateTable feeds navigation keys to the table.
func (p *RecordTable[T]) UpdateTable(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

// Cursor returns the cursor index among the visible rows.
func (p *RecordTable[T]) Cursor() int { return p.table.Cursor() }

// Current returns the record under the cursor.
func (p *RecordTable[T]) Current() (T, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.visible) {
		var zero T
		return zero, false
	}
	return p.visible[i], true
}

// SetMarked replaces the marks.
func (p *RecordTable[T]) SetMarked(keys []string) {
	p.marks = slices.Clone(keys)
	p.refreshRows()
}

// Toggle flips the mark of key and reports whether it is now marked.
func (p *RecordTable[T]) Toggle(key string) bool {
	if i := slices.Index(p.marks, key); i >= 0 {
		p.marks = slices.Delete(p.marks, i, i+1)
		p.refreshRows()
		return false
	}
	p.marks = append(p.marks, key)
	p.refreshRows()
	return true
}

// IsMarked reports whether key is marked.
func (p *RecordTable[T]) IsMarked(key string) bool {
	return slices.Contains(p.marks, key)
}

// MarkedKeys returns the marked keys in mark order.
func (p *RecordTable[T]) MarkedKeys() []string {
	return slices.Clone(p.marks)
}

// Marked returns the first record of each marked key, in mark order.
// Keys no longer present in the collection are skipped.
func (p *RecordTable[T]) Marked() []T {
	byKey := make(map[string]T, len(p.all))
	for _, it := range p.all {
		if _, seen := byKey[it.RecordKey()]; !seen {
			byKey[it.RecordKey()] = it
		}
	}
	out := make([]T, 0, len(p.marks))
	for _, k := range p.marks {
		if it, ok := byKey[k]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Focus gives the pane keyboard focus.
func (p *RecordTable[T]) Focus() {
	p.focused = true
	p.table.Focus()
}

// Blur removes keyboard focus.
func (p *RecordTable[T]) Blur() {
	p.focused = false
	p.table.Blur()
	p.filter.Blur()
}

// Focused reports whether the pane has focus.
func (p *RecordTable[T]) Focused() bool { return p.focused }

// SetPageSize sets how many rows show before the pane is first sized.
func (p *RecordTable[T]) SetPageSize(n int) {
	if n > 0 && p.width == 0 {
		p.table.SetHeight(n)
	}
}

// SetSize sets the outer size of the pane.
func (p *RecordTable[T]) SetSize(w, h int) {
	p.width, p.height = w, h
	inner := PaneContentWidth(w)
	p.table.SetWidth(inner)
	p.table.SetHeight(TableRows(h))
	// Room for the prompt and the term hint.
	p.filter.Width = max(inner-4-len(" literal"), 10)

	if shown := fitColumns(p.columns, inner); shown != p.shown {
		// Rows must never be wider than the column set.
		p.table.SetRows(nil)
		p.shown = shown
		p.table.SetColumns(sortedColumns(p.columns[:shown], p.sortCol, p.sortDesc))
		p.refreshRows()
	}
}

// fitColumns returns how many leading columns fit in width, keeping at
// least two. Each cell carries one cell of padding on both sides.
func fitColumns[T any](columns []Column[T], width int) int {
	used := 1 + 2 // marker column
	for i, c := range columns {
		used += c.Width + 2
		if used > width {
			return max(i, min(2, len(columns)))
		}
	}
	return len(columns)
}

func (p *RecordTable[T]) refreshRows() {
	rows := make([]table.Row, len(p.visible))
	for i, it := range p.visible {
		row := make(table.Row, 0, p.shown+1)
		row = append(row, p.marker(it.RecordKey()))
		for _, c := range p.columns[:p.shown] {
			row = append(row, c.Value(it))
		}
		rows[i] = row
	}
	p.table.SetRows(rows)
}

// termHint tells whether the term is used as a pattern or, when it does
// not compile, as literal text.
func (p *RecordTable[T]) termHint() string {
	switch term := p.Term(); {
	case term == "":
		return ""
	case search.IsPattern(term):
		return "regex"
	default:
		return "literal"
	}
}

func (p *RecordTable[T]) marker(key string) string {
	if !p.IsMarked(key) {
		return " "
	}
	if p.multi {
		return markOn
	}
	return markCur
}

// View renders the pane.
func (p *RecordTable[T]) View() string {
	var sb strings.Builder

	title := p.styles.Title.Render(p.Title)
	count := fmt.Sprintf("%d", len(p.all))
	if len(p.visible) != len(p.all) {
		count = fmt.Sprintf("%d of %d", len(p.visible), len(p.all))
	}
	if p.multi {
		// Marks outside the loaded collection still count: they are mapped.
		count += fmt.Sprintf(" · %d selected", len(p.marks))
	}
	if by, desc, ok := p.SortedBy(); ok {
		count += " · by " + by + sortArrow(desc)
	}
	sb.WriteString(title + "  " + p.styles.Muted.Render(count) + "\n")

	filterStyle := p.styles.Filter
	if p.filter.Focused() {
		filterStyle = p.styles.FilterFocus
	}
	line := p.filter.View()
	if hint := p.termHint(); hint != "" {
		line += " " + p.styles.Muted.Render(hint)
	}
	sb.WriteString(filterStyle.Render(line) + "\n")

	if len(p.all) == 0 {
		sb.WriteString(p.styles.Muted.Render("No data. Press o to open a workbook."))
	} else {
		sb.WriteString(p.table.View())
		if cur, ok := p.Current(); ok && p.Detail != nil {
			sb.WriteString("\n" + p.Detail(cur))
		}
	}

	pane := p.styles.Pane
	if p.focused {
		pane = p.styles.FocusedPane
	}
	if p.width > 0 {
		pane = pane.Width(p.width - PaneChrome)
	}
	if p.height > 0 {
		pane = pane.Height(p.height - PaneChrome)
	}
	return pane.Render(sb.String())
}
