package board

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kwmap/cmd/kwmap/ui"
	"kwmap/internal/importer"
	"kwmap/internal/logging"
	"kwmap/internal/record"
	"kwmap/internal/search"
)

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		if m.mode == modeHelp {
			m.renderHelp()
		}
		return m, nil

	case productResultsMsg:
		// A result for an older term is superseded by one already queued;
		// one for an older collection was filtered from replaced rows.
		if msg.Term == m.products.Term() && msg.Gen == m.productSearch.Gen() {
			m.products.SetVisible(msg.Items)
		}
		logging.Search("product pass", zap.Uint64("seq", msg.Seq), zap.Uint64("gen", msg.Gen), zap.String("term", msg.Term), zap.Int("hits", len(msg.Items)))
		return m, waitProductResults(m.productSearch)

	case keywordResultsMsg:
		if msg.Term == m.keywords.Term() && msg.Gen == m.keywordSearch.Gen() {
			m.keywords.SetVisible(msg.Items)
		}
		logging.Search("keyword pass", zap.Uint64("seq", msg.Seq), zap.Uint64("gen", msg.Gen), zap.String("term", msg.Term), zap.Int("hits", len(msg.Items)))
		return m, waitKeywordResults(m.keywordSearch)

	case productsLoadedMsg:
		return m.applyProducts(msg.batch, msg.reload)

	case keywordsLoadedMsg:
		return m.applyKeywords(msg.batch, msg.reload)

	case importFailedMsg:
		text := fmt.Sprintf("%s: %s", filepath.Base(msg.path), importer.UserMessage(msg.err))
		return m, m.notify(toastError, text)

	case preloadedMsg:
		if msg.err != nil {
			// Import each file on its own so the good one still loads and
			// the bad one reports its own error.
			m.log.Warn("preload failed", zap.Error(msg.err))
			var cmds []tea.Cmd
			if msg.productsPath != "" {
				cmds = append(cmds, importCmd(m.importer, importer.KindProduct, msg.productsPath, false))
			}
			if msg.keywordsPath != "" {
				cmds = append(cmds, importCmd(m.importer, importer.KindKeyword, msg.keywordsPath, false))
			}
			return m, tea.Batch(cmds...)
		}
		var cmds []tea.Cmd
		if b := msg.loaded.Products; b != nil {
			var cmd tea.Cmd
			m, cmd = m.applyProducts(b, false)
			cmds = append(cmds, cmd)
		}
		if b := msg.loaded.Keywords; b != nil {
			var cmd tea.Cmd
			m, cmd = m.applyKeywords(b, false)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case fileChangedMsg:
		var next tea.Cmd
		if m.watcher != nil {
			next = waitChange(m.watcher)
		}
		if m.loaded[msg.Kind] != msg.Path {
			return m, next
		}
		logging.Watch("reloading", zap.String("kind", string(msg.Kind)), zap.String("path", msg.Path))
		return m, tea.Batch(next, importCmd(m.importer, msg.Kind, msg.Path, true))

	case toastExpiredMsg:
		if msg.seq == m.toast.seq {
			m.toast.text = ""
		}
		return m, nil
	}

	if m.mode == modePicking {
		return m.updatePicker(msg)
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(k)
	}
	return m, nil
}

func (m Model) applyProducts(b *importer.Batch[record.Product], reload bool) (Model, tea.Cmd) {
	m.products.SetItems(b.Records)
	m.productSearch.SetItems(b.Records)
	m.syncMarks()
	return m, m.loadedToast(b.Kind, b.Path, len(b.Records), b.Duplicates, reload)
}

func (m Model) applyKeywords(b *importer.Batch[record.Keyword], reload bool) (Model, tea.Cmd) {
	m.keywords.SetItems(b.Records)
	m.keywordSearch.SetItems(b.Records)
	m.syncMarks()
	return m, m.loadedToast(b.Kind, b.Path, len(b.Records), b.Duplicates, reload)
}

func (m *Model) loadedToast(kind importer.Kind, path string, n, dups int, reload bool) tea.Cmd {
	m.loaded[kind] = path
	if m.watcher != nil && !reload {
		if err := m.watcher.Watch(kind, path); err != nil {
			m.log.Warn("watch failed", zap.String("path", path), zap.Error(err))
		}
	}

	verb := "Loaded"
	if reload {
		verb = "Reloaded"
	}
	text := fmt.Sprintf("%s %d %ss from %s", verb, n, kind, filepath.Base(path))
	if dups > 0 {
		text += fmt.Sprintf(" (%d duplicate keys)", dups)
		return m.notify(toastWarning, text)
	}
	return m.notify(toastSuccess, text)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeHelp {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit):
			m.mode = modeBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	if m.filtering() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		if m.focus == focusProducts {
			cmd = filterKey(m.products, m.productSearch, m.keys, msg)
		} else {
			cmd = filterKey(m.keywords, m.keywordSearch, m.keys, msg)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
		m.renderHelp()
		return m, nil
	case key.Matches(msg, m.keys.NextPane):
		m.setFocus(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevPane):
		m.setFocus(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Open) && m.focus != focusResults:
		return m.openPicker(m.focusKind())
	case key.Matches(msg, m.keys.Sort) && m.focus != focusResults:
		m.cycleSort()
		return m, nil
	case key.Matches(msg, m.keys.Clear) && m.focus != focusResults:
		return m.unload(m.focusKind())
	}

	switch m.focus {
	case focusProducts:
		return m.productKey(msg)
	case focusKeywords:
		return m.keywordKey(msg)
	default:
		return m.resultsKey(msg)
	}
}

func (m Model) focusKind() importer.Kind {
	if m.focus == focusKeywords {
		return importer.KindKeyword
	}
	return importer.KindProduct
}

func (m *Model) cycleSort() {
	var (
		by       string
		desc, ok bool
	)
	if m.focus == focusKeywords {
		m.keywords.CycleSort()
		by, desc, ok = m.keywords.SortedBy()
	} else {
		m.products.CycleSort()
		by, desc, ok = m.products.SortedBy()
	}
	logging.UIDebug("sort changed", zap.String("pane", string(m.focusKind())),
		zap.String("column", by), zap.Bool("desc", desc), zap.Bool("sorted", ok))
}

// filterKey routes a key to a pane's search box and feeds term changes to
// its live query.
func filterKey[T record.Record](p *ui.RecordTable[T], live *search.Live[T], keys keyMap, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.EndSearch):
		// Enter does not wait out the debounce window.
		p.StopFilter(false)
		live.Refresh()
		return nil
	case key.Matches(msg, keys.Cancel):
		if p.StopFilter(true) {
			live.SetTerm("")
			p.SetVisible(p.Items())
		}
		return nil
	}
	changed, cmd := p.UpdateFilter(msg)
	if changed {
		live.SetTerm(p.Term())
	}
	return cmd
}

func (m Model) productKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.products.StartFilter()
	case key.Matches(msg, m.keys.Select):
		cur, ok := m.products.Current()
		if !ok {
			return m, nil
		}
		m.store.SelectProduct(cur)
		m.syncMarks()
		m.results.FocusEntry(cur.Key)
		logging.UIDebug("product selected", zap.String("product", cur.Key))
		return m, nil
	case key.Matches(msg, m.keys.ClearFocus):
		m.store.ClearSelection()
		m.syncMarks()
		return m, nil
	}
	return m, m.products.UpdateTable(msg)
}

func (m Model) keywordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.keywords.StartFilter()
	case key.Matches(msg, m.keys.Toggle):
		cur, ok := m.keywords.Current()
		if !ok {
			return m, nil
		}
		sel := m.store.State().SelectedKeywords()
		if i := slices.IndexFunc(sel, func(k record.Keyword) bool { return k.Key == cur.Key }); i >= 0 {
			sel = slices.Delete(sel, i, i+1)
		} else {
			sel = append(sel, cur)
		}
		return m.selectKeywords(sel)
	case key.Matches(msg, m.keys.MarkAll):
		sel := m.store.State().SelectedKeywords()
		for _, k := range m.keywords.Visible() {
			if !slices.ContainsFunc(sel, func(s record.Keyword) bool { return s.Key == k.Key }) {
				sel = append(sel, k)
			}
		}
		return m.selectKeywords(sel)
	case key.Matches(msg, m.keys.MarkNone):
		return m.selectKeywords(nil)
	}
	return m, m.keywords.UpdateTable(msg)
}

func (m Model) selectKeywords(sel []record.Keyword) (tea.Model, tea.Cmd) {
	if err := m.store.SelectKeywords(sel); err != nil {
		return m, m.notify(toastError, importer.UserMessage(err))
	}
	m.syncMarks()
	if p, ok := m.store.State().Selected(); ok {
		m.results.FocusEntry(p.Key)
	}
	return m, nil
}

func (m Model) resultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prodKey, kwKey, ok := m.results.Current()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.results.Up()
	case key.Matches(msg, m.keys.Down):
		m.results.Down()
	case key.Matches(msg, m.keys.Left):
		m.results.Left()
	case key.Matches(msg, m.keys.Right):
		m.results.Right()

	case key.Matches(msg, m.keys.MoveLeft), key.Matches(msg, m.keys.MoveRight):
		delta := 1
		if key.Matches(msg, m.keys.MoveLeft) {
			delta = -1
		}
		target, found := m.results.Neighbor(delta)
		if !ok || !found {
			return m, nil
		}
		m.store.ReorderKeyword(prodKey, kwKey, target)
		m.syncMarks()
		m.results.FocusKeyword(kwKey)

	case key.Matches(msg, m.keys.Remove):
		if !ok {
			return m, nil
		}
		m.store.RemoveKeyword(prodKey, kwKey)
		m.syncMarks()

	case key.Matches(msg, m.keys.RemoveAll):
		e, found := m.store.State().Entry(prodKey)
		if !found {
			return m, nil
		}
		m.store.RemoveAllKeywords(prodKey)
		m.syncMarks()
		return m, m.notify(toastInfo, fmt.Sprintf("Removed all keywords from %s", e.Product.Name))

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyKeywords(prodKey)

	case key.Matches(msg, m.keys.Jump):
		e, found := m.store.State().Entry(prodKey)
		if !found {
			return m, nil
		}
		m.store.SelectProduct(e.Product)
		m.syncMarks()
		m.setFocus(focusKeywords)
	}
	return m, nil
}

func (m *Model) copyKeywords(productKey string) tea.Cmd {
	st := m.store.State()
	text, ok := st.CopyText(productKey)
	if !ok {
		return nil
	}
	e, _ := st.Entry(productKey)
	if err := clipboardWriteAll(text); err != nil {
		logging.Export("clipboard write failed", zap.String("product", productKey), zap.Error(err))
		return m.notify(toastError, "clipboard unavailable: "+err.Error())
	}
	logging.Export("keywords copied", zap.String("product", productKey), zap.Int("keywords", len(e.Keywords)))
	return m.notify(toastSuccess, fmt.Sprintf("Copied %d keywords of %s", len(e.Keywords), e.Product.Name))
}

// unload drops a loaded workbook. The mapping keeps the records it holds.
func (m Model) unload(kind importer.Kind) (tea.Model, tea.Cmd) {
	if _, ok := m.loaded[kind]; !ok {
		return m, nil
	}
	delete(m.loaded, kind)
	switch kind {
	case importer.KindProduct:
		m.products.SetItems(nil)
		m.productSearch.SetItems(nil)
	default:
		m.keywords.SetItems(nil)
		m.keywordSearch.SetItems(nil)
	}
	m.syncMarks()
	return m, m.notify(toastInfo, fmt.Sprintf("Unloaded %ss", kind))
}

func (m Model) openPicker(kind importer.Kind) (tea.Model, tea.Cmd) {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".xlsx"}
	fp.CurrentDirectory = m.pickDir
	fp.Height = max(m.height-ui.HeaderHeight-ui.FooterHeight-3, 3)

	m.picker = fp
	m.pickKind = kind
	m.mode = modePicking
	return m, m.picker.Init()
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.mode = modeBrowse
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.mode = modeBrowse
		m.pickDir = filepath.Dir(path)
		logging.UI("file picked", zap.String("kind", string(m.pickKind)), zap.String("path", path))
		return m, tea.Batch(cmd, importCmd(m.importer, m.pickKind, path, false))
	}
	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		text := fmt.Sprintf("%s: %s", filepath.Base(path), importer.UserMessage(&importer.FileTypeError{Path: path}))
		return m, tea.Batch(cmd, m.notify(toastWarning, text))
	}
	return m, cmd
}
