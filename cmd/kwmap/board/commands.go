package board

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kwmap/internal/importer"
	"kwmap/internal/record"
	"kwmap/internal/search"
)

type productsLoadedMsg struct {
	batch  *importer.Batch[record.Product]
	reload bool
}

type keywordsLoadedMsg struct {
	batch  *importer.Batch[record.Keyword]
	reload bool
}

type importFailedMsg struct {
	kind importer.Kind
	path string
	err  error
}

type preloadedMsg struct {
	loaded       importer.Loaded
	err          error
	productsPath string
	keywordsPath string
}

type productResultsMsg search.Result[record.Product]

type keywordResultsMsg search.Result[record.Keyword]

type fileChangedMsg importer.Change

type toastExpiredMsg struct{ seq int }

func importCmd(im *importer.Importer, kind importer.Kind, path string, reload bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		switch kind {
		case importer.KindProduct:
			b, err := im.Products(ctx, path)
			if err != nil {
				return importFailedMsg{kind: kind, path: path, err: err}
			}
			return productsLoadedMsg{batch: b, reload: reload}
		default:
			b, err := im.Keywords(ctx, path)
			if err != nil {
				return importFailedMsg{kind: kind, path: path, err: err}
			}
			return keywordsLoadedMsg{batch: b, reload: reload}
		}
	}
}

func preloadCmd(im *importer.Importer, productsPath, keywordsPath string) tea.Cmd {
	return func() tea.Msg {
		loaded, err := im.Preload(context.Background(), productsPath, keywordsPath)
		return preloadedMsg{loaded: loaded, err: err, productsPath: productsPath, keywordsPath: keywordsPath}
	}
}

// waitProductResults blocks until the next search pass. It returns nil
// once the live query is closed.
func waitProductResults(l *search.Live[record.Product]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-l.Results()
		if !ok {
			return nil
		}
		return productResultsMsg(res)
	}
}

func waitKeywordResults(l *search.Live[record.Keyword]) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-l.Results()
		if !ok {
			return nil
		}
		return keywordResultsMsg(res)
	}
}

func waitChange(w *importer.Watcher) tea.Cmd {
	return func() tea.Msg {
		ch, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return fileChangedMsg(ch)
	}
}

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarning
	toastError
)

type toast struct {
	text  string
	level toastLevel
	seq   int
}

// notify shows text in the footer until the configured timeout passes or
// a newer toast replaces it.
func (m *Model) notify(level toastLevel, text string) tea.Cmd {
	seq := m.toast.seq + 1
	m.toast = toast{text: text, level: level, seq: seq}
	return tea.Tick(m.cfg.GetToastTimeout(), func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
