package board

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kwmap/cmd/kwmap/ui"
	"kwmap/internal/importer"
)

// View renders the board.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	layout := ui.NewLayoutConfig(m.width, m.height)
	if layout.TooSmall() {
		return m.styles.Warning.Render(fmt.Sprintf(
			"Terminal too small (%dx%d). kwmap needs at least %dx%d.",
			m.width, m.height, ui.MinimumTerminalWidth, ui.MinimumTerminalHeight))
	}

	var body string
	switch m.mode {
	case modePicking:
		body = m.pickerView()
	case modeHelp:
		body = m.helpView.View()
	default:
		left := lipgloss.JoinVertical(lipgloss.Left, m.products.View(), m.keywords.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, m.results.View())
	}
	body = lipgloss.NewStyle().Height(layout.BodyHeight()).MaxHeight(layout.BodyHeight()).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m Model) headerView() string {
	text := "kwmap"
	if p, ok := m.store.State().Selected(); ok {
		text += fmt.Sprintf(" · %s (%s)", p.Name, p.ID)
	} else {
		text += " · no product selected"
	}
	for _, kind := range []importer.Kind{importer.KindProduct, importer.KindKeyword} {
		if path, ok := m.loaded[kind]; ok {
			text += fmt.Sprintf(" · %s: %s", kind, filepath.Base(path))
		}
	}
	if m.watcher != nil {
		text += " · watching"
	}
	text = runewidth.Truncate(text, max(m.width-4, 1), "…")
	return m.styles.Header.Width(m.width).Render(text)
}

func (m Model) footerView() string {
	var status string
	if m.toast.text != "" {
		style := m.styles.Info
		switch m.toast.level {
		case toastSuccess:
			style = m.styles.Success
		case toastWarning:
			style = m.styles.Warning
		case toastError:
			style = m.styles.Error
		}
		status = style.Render(runewidth.Truncate(m.toast.text, max(m.width-2, 1), "…"))
	}

	var hints string
	switch m.mode {
	case modePicking:
		hints = m.styles.Muted.Render("enter open · ←/h up a directory · esc cancel")
	case modeHelp:
		hints = m.styles.Muted.Render("↑/↓ scroll · ? or esc close")
	default:
		hints = m.help.ShortHelpView(m.keys.bindings(m.focus, m.filtering()))
	}
	return m.styles.Footer.Render(status + "\n" + hints)
}

func (m Model) pickerView() string {
	title := m.styles.Title.Render(fmt.Sprintf("Open %s workbook", m.pickKind))
	dir := m.styles.Muted.Render(m.picker.CurrentDirectory)
	return lipgloss.JoinVertical(lipgloss.Left, title, dir, "", m.picker.View())
}
