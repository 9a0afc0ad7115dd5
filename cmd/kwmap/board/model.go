// Package board is the interactive mapping workbench: product, keyword and
// results panes over one mapping store.
package board

import (
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"kwmap/cmd/kwmap/ui"
	"kwmap/internal/config"
	"kwmap/internal/importer"
	"kwmap/internal/logging"
	"kwmap/internal/mapping"
	"kwmap/internal/record"
	"kwmap/internal/search"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

type focus int

const (
	focusProducts focus = iota
	focusKeywords
	focusResults
	focusCount
)

type viewMode int

const (
	modeBrowse viewMode = iota
	modePicking
	modeHelp
)

// Options configures a board.
type Options struct {
	Config    *config.Config
	Workspace string

	// Workbooks imported at startup. Empty paths are skipped.
	ProductsPath string
	KeywordsPath string

	// Watch re-imports loaded workbooks when they are rewritten.
	Watch bool
}

// Model is the root bubbletea model.
type Model struct {
	cfg      *config.Config
	importer *importer.Importer
	store    *mapping.Store
	log      *logging.Logger
	styles   ui.Styles
	keys     keyMap
	help     help.Model

	products *ui.RecordTable[record.Product]
	keywords *ui.RecordTable[record.Keyword]
	results  *ui.Results

	productSearch *search.Live[record.Product]
	keywordSearch *search.Live[record.Keyword]

	watcher *importer.Watcher
	loaded  map[importer.Kind]string

	picker   filepicker.Model
	pickKind importer.Kind
	pickDir  string

	helpView viewport.Model

	mode   viewMode
	focus  focus
	toast  toast
	width  int
	height int

	preloadProducts string
	preloadKeywords string
}

// New creates a board. Watch failures are logged and leave watching off.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	styles := ui.NewStyles(ui.DetectTheme(cfg.UI.DarkMode))
	window := cfg.GetDebounce()

	m := Model{
		cfg:      cfg,
		importer: importer.New(cfg, logging.Get(logging.CategoryImport)),
		store:    mapping.NewStore(logging.Get(logging.CategoryMapping)),
		log:      logging.Get(logging.CategoryUI),
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     help.New(),

		products: ui.NewRecordTable("Products", ui.ProductColumns(), false, styles),
		keywords: ui.NewRecordTable("Keywords", ui.KeywordColumns(), true, styles),
		results:  ui.NewResults(styles),

		productSearch: search.NewLive[record.Product](window),
		keywordSearch: search.NewLive[record.Keyword](window),

		loaded:   make(map[importer.Kind]string),
		pickDir:  opts.Workspace,
		helpView: viewport.New(80, 20),

		preloadProducts: opts.ProductsPath,
		preloadKeywords: opts.KeywordsPath,
	}
	m.products.SetPageSize(cfg.UI.PageSize)
	m.keywords.SetPageSize(cfg.UI.PageSize)
	m.products.Detail = ui.ProductDetail
	m.keywords.Detail = ui.KeywordDetail
	m.products.Focus()

	if m.pickDir == "" {
		m.pickDir = "."
	}
	if abs, err := filepath.Abs(m.pickDir); err == nil {
		m.pickDir = abs
	}

	if opts.Watch {
		w, err := importer.NewWatcher(window, logging.Get(logging.CategoryWatch))
		if err != nil {
			m.log.Warn("file watching disabled", zap.Error(err))
		} else {
			m.watcher = w
		}
	}
	return m
}

// Init starts the preload and the result listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitProductResults(m.productSearch),
		waitKeywordResults(m.keywordSearch),
	}
	if m.preloadProducts != "" || m.preloadKeywords != "" {
		cmds = append(cmds, preloadCmd(m.importer, m.preloadProducts, m.preloadKeywords))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Close releases the watcher and the search timers. Call it after the
// program exits.
func (m Model) Close() {
	m.productSearch.Close()
	m.keywordSearch.Close()
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.log.Warn("close watcher", zap.Error(err))
		}
	}
}

// Store exposes the mapping store, for the caller to inspect the final
// mapping after the program exits.
func (m Model) Store() *mapping.Store { return m.store }

func (m *Model) setFocus(f focus) {
	m.focus = (f + focusCount) % focusCount
	m.products.Blur()
	m.keywords.Blur()
	m.results.Blur()
	switch m.focus {
	case focusProducts:
		m.products.Focus()
	case focusKeywords:
		m.keywords.Focus()
	case focusResults:
		m.results.Focus()
	}
}

func (m *Model) filtering() bool {
	return m.products.Filtering() || m.keywords.Filtering()
}

// syncMarks makes both record panes reflect the store.
func (m *Model) syncMarks() {
	st := m.store.State()
	if p, ok := st.Selected(); ok {
		m.products.SetMarked([]string{p.Key})
	} else {
		m.products.SetMarked(nil)
	}
	m.keywords.SetMarked(record.Keys(st.SelectedKeywords()))
	m.results.SetEntries(st.Entries())
}

func (m *Model) resize() {
	layout := ui.NewLayoutConfig(m.width, m.height)
	left, right := layout.Columns()
	ph, kh := layout.LeftPaneHeights()
	m.products.SetSize(left, ph)
	m.keywords.SetSize(left, kh)
	m.results.SetSize(right, layout.BodyHeight())
	m.help.Width = m.width

	m.helpView.Width = max(m.width-4, 20)
	m.helpView.Height = max(m.height-ui.HeaderHeight-ui.FooterHeight, 5)
	m.picker.Height = max(m.height-ui.HeaderHeight-ui.FooterHeight-3, 3)
}
