package board

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# kwmap

Map products to ordered keyword lists.

## Getting started

1. Focus **Products** and press **o** to open a product workbook (.xlsx).
2. Press **tab**, then **o** again to open a keyword ranking workbook.
3. Select a product with **enter**. Mark its keywords with **space**.
4. Tune the order in **Results** and press **c** to copy the list.

## Everywhere

| Key | Action |
|-----|--------|
| tab / shift+tab | Next / previous pane |
| / | Search the focused pane (regular expression) |
| enter / esc (searching) | Keep / clear the term |
| s | Sort products or keywords by the next column |
| o | Open a workbook for the focused pane |
| x | Unload the focused pane's workbook |
| ? | Toggle this help |
| q, ctrl+c | Quit |

## Products

| Key | Action |
|-----|--------|
| enter, space | Select the product to map |
| esc | Clear the selection |

## Keywords

| Key | Action |
|-----|--------|
| space | Add or remove the keyword |
| a | Add every keyword shown |
| n | Remove every keyword |

## Results

| Key | Action |
|-----|--------|
| ↑↓ / k j | Previous / next product |
| ←→ / h l | Previous / next keyword |
| < > | Move the keyword left / right |
| d | Remove the keyword |
| D | Remove every keyword of the product |
| c | Copy the keywords, separated by spaces |
| enter | Edit the product's keywords |

Searches that are not valid regular expressions match literally; the
search box shows which one applies. Sorting steps through each column
ascending, then descending, then back to the workbook order. Prices sort
by amount. Keywords keep the order they were added in until you move them.
`

// renderHelp renders the help text into the help viewport.
func (m *Model) renderHelp() {
	width := max(m.helpView.Width-2, 20)

	var renderer *glamour.TermRenderer
	var err error
	if m.styles.Theme.IsDark {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
	} else {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(width),
		)
	}

	content := helpMarkdown
	if err == nil {
		if out, rerr := renderer.Render(helpMarkdown); rerr == nil {
			content = out
		}
	}
	m.helpView.SetContent(content)
	m.helpView.GotoTop()
}
