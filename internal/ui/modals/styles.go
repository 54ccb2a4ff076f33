package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Style variables, set by the parent ui package via SetStyles.
var (
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ItemStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	StatusErrorStyle  lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
	ModalWidthWide      int
)

// Palette groups the colors handed over by SetStyles.
type Palette struct {
	Primary, Secondary, Text, TextMuted, TextInverse, Warning color.Color
}

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals.
func SetStyles(title, help, item, selected, statusError lipgloss.Style, p Palette, inputWidth, inputCharLimit, width int) {
	ModalTitleStyle = title
	ModalHelpStyle = help
	ItemStyle = item
	SelectedItemStyle = selected
	StatusErrorStyle = statusError

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorText = p.Text
	ColorTextMuted = p.TextMuted
	ColorTextInverse = p.TextInverse
	ColorWarning = p.Warning

	ModalInputWidth = inputWidth
	ModalInputCharLimit = inputCharLimit
	ModalWidth = width
	ModalWidthWide = width * 3 / 2
}
