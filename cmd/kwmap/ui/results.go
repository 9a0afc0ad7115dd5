package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"kwmap/internal/mapping"
)

// Results shows the mapping, one block per product with its keywords as
// tags. The cursor addresses one keyword of one entry.
type Results struct {
	entries []mapping.Entry
	entry   int
	keyword int

	vp      viewport.Model
	focused bool
	width   int
	height  int
	styles  Styles
}

// NewResults creates an empty results pane.
func NewResults(styles Styles) *Results {
	return &Results{vp: viewport.New(40, 10), styles: styles}
}

// SetEntries replaces the shown mapping. The cursor follows the product
// and keyword it was on when they still exist; otherwise it keeps its
// position, so a removed keyword hands the cursor to the next one.
func (r *Results) SetEntries(entries []mapping.Entry) {
	prodKey, kwKey, _ := r.Current()
	oldEntry, oldKeyword := r.entry, r.keyword
	r.entries = entries
	r.entry, r.keyword = min(oldEntry, max(len(entries)-1, 0)), 0

	found := false
	for i, e := range entries {
		if e.Key != prodKey {
			continue
		}
		r.entry, found = i, true
		r.keyword = oldKeyword
		for j, k := range e.Keywords {
			if k.Key == kwKey {
				r.keyword = j
				break
			}
		}
		break
	}
	if !found {
		r.keyword = 0
	}
	r.clampKeyword()
	r.render()
}

// Current returns the product and keyword keys under the cursor.
func (r *Results) Current() (productKey, keywordKey string, ok bool) {
	if r.entry >= len(r.entries) {
		return "", "", false
	}
	e := r.entries[r.entry]
	if r.keyword >= len(e.Keywords) {
		return e.Key, "", false
	}
	return e.Key, e.Keywords[r.keyword].Key, true
}

// Neighbor returns the keyword key next to the cursor in direction
// delta (-1 left, +1 right) within the current entry.
func (r *Results) Neighbor(delta int) (string, bool) {
	if r.entry >= len(r.entries) {
		return "", false
	}
	kws := r.entries[r.entry].Keywords
	j := r.keyword + delta
	if j < 0 || j >= len(kws) {
		return "", false
	}
	return kws[j].Key, true
}

// FocusKeyword moves the cursor to keywordKey within the current entry.
func (r *Results) FocusKeyword(keywordKey string) {
	if r.entry >= len(r.entries) {
		return
	}
	for j, k := range r.entries[r.entry].Keywords {
		if k.Key == keywordKey {
			r.keyword = j
			r.render()
			return
		}
	}
}

// FocusEntry moves the cursor to productKey's entry.
func (r *Results) FocusEntry(productKey string) {
	for i, e := range r.entries {
		if e.Key == productKey {
			r.entry, r.keyword = i, 0
			r.render()
			return
		}
	}
}

// Up moves to the previous entry.
func (r *Results) Up() {
	if r.entry > 0 {
		r.entry--
		r.clampKeyword()
		r.render()
	}
}

// Down moves to the next entry.
func (r *Results) Down() {
	if r.entry < len(r.entries)-1 {
		r.entry++
		r.clampKeyword()
		r.render()
	}
}

// Left moves to the previous keyword.
func (r *Results) Left() {
	if r.keyword > 0 {
		r.keyword--
		r.render()
	}
}

// Right moves to the next keyword.
func (r *Results) Right() {
	if r.entry < len(r.entries) && r.keyword < len(r.entries[r.entry].Keywords)-1 {
		r.keyword++
		r.render()
	}
}

func (r *Results) clampKeyword() {
	if r.entry >= len(r.entries) {
		r.keyword = 0
		return
	}
	if n := len(r.entries[r.entry].Keywords); r.keyword >= n {
		r.keyword = max(n-1, 0)
	}
}

// Focus gives the pane keyboard focus.
func (r *Results) Focus() { r.focused = true; r.render() }

// Blur removes keyboard focus.
func (r *Results) Blur() { r.focused = false; r.render() }

// Focused reports whether the pane has focus.
func (r *Results) Focused() bool { return r.focused }

// SetSize sets the outer size of the pane.
func (r *Results) SetSize(w, h int) {
	r.width, r.height = w, h
	r.vp.Width = PaneContentWidth(w)
	r.vp.Height = max(h-PaneChrome-1, 1)
	r.render()
}

// render rebuilds the viewport content and scrolls the cursor into view.
func (r *Results) render() {
	var sb strings.Builder
	cursorLine, line := 0, 0
	width := max(r.vp.Width, 10)

	for i, e := range r.entries {
		if i > 0 {
			sb.WriteString("\n")
			line++
		}
		marker := "  "
		if i == r.entry {
			marker = "▶ "
			cursorLine = line
		}
		title := fmt.Sprintf("%s%s (%s) · %d", marker, e.Product.Name, e.Product.ID, len(e.Keywords))
		sb.WriteString(r.styles.EntryTitle.Render(title) + "\n")
		line++

		tags := make([]string, len(e.Keywords))
		for j, k := range e.Keywords {
			style := r.styles.Tag
			if r.focused && i == r.entry && j == r.keyword {
				style = r.styles.TagSelected
			}
			tags[j] = style.Render(k.Keyword)
		}
		wrapped := wrapTags(tags, width)
		sb.WriteString(wrapped + "\n")
		line += strings.Count(wrapped, "\n") + 1
	}

	r.vp.SetContent(sb.String())
	if cursorLine < r.vp.YOffset || cursorLine >= r.vp.YOffset+r.vp.Height {
		r.vp.SetYOffset(cursorLine)
	}
}

// wrapTags lays tags out left to right, breaking lines at width.
func wrapTags(tags []string, width int) string {
	var lines []string
	var cur []string
	curWidth := 0
	for _, t := range tags {
		w := lipgloss.Width(t)
		if len(cur) > 0 && curWidth+1+w > width {
			lines = append(lines, strings.Join(cur, " "))
			cur, curWidth = nil, 0
		}
		if len(cur) > 0 {
			curWidth++
		}
		cur = append(cur, t)
		curWidth += w
	}
	if len(cur) > 0 {
		lines = append(lines, strings.Join(cur, " "))
	}
	return "  " + strings.Join(lines, "\n  ")
}

// View renders the pane.
func (r *Results) View() string {
	var sb strings.Builder
	sb.WriteString(r.styles.Title.Render("Results") + "  " +
		r.styles.Muted.Render(fmt.Sprintf("%d mapped", len(r.entries))) + "\n")
	if len(r.entries) == 0 {
		sb.WriteString(r.styles.Muted.Render("Select a product, then mark keywords with space."))
	} else {
		sb.WriteString(r.vp.View())
	}

	pane := r.styles.Pane
	if r.focused {
		pane = r.styles.FocusedPane
	}
	if r.width > 0 {
		pane = pane.Width(r.width - PaneChrome)
	}
	if r.height > 0 {
		pane = pane.Height(r.height - PaneChrome)
	}
	return pane.Render(sb.String())
}
