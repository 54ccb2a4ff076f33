package modals

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// renderDialog stacks a dialog's title, body parts and help line.
func renderDialog(s ModalState, body ...string) string {
	parts := make([]string, 0, len(body)+2)
	parts = append(parts, ModalTitleStyle.Render(s.Title()))
	parts = append(parts, body...)
	parts = append(parts, ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderSelectableList renders items with the one at selectedIndex highlighted.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		style := ItemStyle
		prefix := "  "
		if i == selectedIndex {
			style = SelectedItemStyle
			prefix = "> "
		}
		result.WriteString(style.Render(prefix+item) + "\n")
	}
	return strings.TrimSuffix(result.String(), "\n")
}

// TruncateString shortens s to at most width cells, ending in an ellipsis.
func TruncateString(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// muted renders secondary text in the dialog palette.
func muted(s string) string {
	return lipgloss.NewStyle().Foreground(ColorTextMuted).Render(s)
}
