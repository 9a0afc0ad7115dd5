package board

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Search    key.Binding
	EndSearch key.Binding
	Cancel    key.Binding
	Open      key.Binding
	Clear     key.Binding

	// Products and keywords
	Sort       key.Binding
	Select     key.Binding
	Toggle     key.Binding
	MarkAll    key.Binding
	MarkNone   key.Binding
	ClearFocus key.Binding

	// Results
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Remove    key.Binding
	RemoveAll key.Binding
	Copy      key.Binding
	Jump      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		EndSearch: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep term")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unload")),

		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		MarkAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all shown")),
		MarkNone:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
		ClearFocus: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		MoveLeft:  key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "move left")),
		MoveRight: key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "move right")),
		Remove:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		RemoveAll: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "remove all")),
		Copy:      key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy")),
		Jump:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	}
}

// bindings returns the footer hints for the focused pane.
func (k keyMap) bindings(f focus, filtering bool) []key.Binding {
	if filtering {
		return []key.Binding{k.EndSearch, k.Cancel}
	}
	var out []key.Binding
	switch f {
	case focusProducts:
		out = []key.Binding{k.Select, k.ClearFocus, k.Search, k.Sort, k.Open}
	case focusKeywords:
		out = []key.Binding{k.Toggle, k.MarkAll, k.MarkNone, k.Search, k.Sort, k.Open}
	case focusResults:
		out = []key.Binding{k.Left, k.Right, k.MoveLeft, k.MoveRight, k.Remove, k.RemoveAll, k.Copy, k.Jump}
	}
	return append(out, k.NextPane, k.Help, k.Quit)
}
