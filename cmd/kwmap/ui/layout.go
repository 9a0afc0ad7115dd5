package ui

// Layout constants for panel sizing
const (
	HeaderHeight  = 1
	FooterHeight  = 2
	FilterHeight  = 2
	PaneChrome    = 2 // rounded border, top and bottom
	PanePaddingH  = 1
	TableHeader   = 2 // column titles and rule
	DetailHeight  = 1
	MinPaneHeight = 6

	// Products and keywords share the left column; results take the rest.
	LeftColumnRatio = 0.6

	// Responsive breakpoints
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{TerminalWidth: width, TerminalHeight: height}
}

// TooSmall reports whether the terminal is below the supported minimum.
func (l LayoutConfig) TooSmall() bool {
	return l.TerminalWidth < MinimumTerminalWidth || l.TerminalHeight < MinimumTerminalHeight
}

// Columns returns the outer widths of the left and right columns.
func (l LayoutConfig) Columns() (left, right int) {
	left = int(float64(l.TerminalWidth) * LeftColumnRatio)
	return left, l.TerminalWidth - left
}

// BodyHeight is the height between header and footer.
func (l LayoutConfig) BodyHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight, 2*MinPaneHeight)
}

// LeftPaneHeights splits the left column between products and keywords.
func (l LayoutConfig) LeftPaneHeights() (products, keywords int) {
	body := l.BodyHeight()
	products = body / 2
	return products, body - products
}

// PaneContentWidth returns the width inside a bordered pane.
func PaneContentWidth(outer int) int {
	return max(outer-PaneChrome-2*PanePaddingH, 1)
}

// TableRows returns how many table rows fit in a pane of the given outer
// height, between the title and filter lines and the detail line.
func TableRows(outer int) int {
	return max(outer-PaneChrome-1-FilterHeight-TableHeader-DetailHeight, 1)
}
