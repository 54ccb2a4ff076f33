package ui

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/logger"
)

// ClipboardErrorMsg is sent when the native clipboard write fails
type ClipboardErrorMsg struct {
	Error error
}

// SelectionFlashTickMsg ends the copy flash on a selection
type SelectionFlashTickMsg time.Time

// SelectionFlashTick returns a command that sends a selection flash tick
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells
)

// CopyToClipboard writes text through OSC 52 and the native clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return tea.Batch(
		tea.SetClipboard(text),
		func() tea.Msg {
			if err := clipboard.WriteText(text); err != nil {
				logger.WithComponent("ui").Warn("clipboard write failed", "error", err)
				return ClipboardErrorMsg{Error: err}
			}
			return nil
		},
	)
}

// StartSelection begins a text selection at the given coordinates
func (c *Chat) StartSelection(col, line int) {
	c.selectionStartCol = col
	c.selectionStartLine = line
	c.selectionEndCol = col
	c.selectionEndLine = line
	c.selectionActive = true
}

// EndSelection updates the end position of the selection during drag
func (c *Chat) EndSelection(col, line int) {
	if !c.selectionActive {
		return
	}
	c.selectionEndCol = col
	c.selectionEndLine = line
}

// SelectionStop ends the drag but keeps the selection visible
func (c *Chat) SelectionStop() {
	c.selectionActive = false
}

// SelectionClear clears the selection entirely
func (c *Chat) SelectionClear() {
	c.selectionStartCol = -1
	c.selectionStartLine = -1
	c.selectionEndCol = -1
	c.selectionEndLine = -1
	c.selectionActive = false
}

// HasTextSelection returns true if there is an active or completed selection
func (c *Chat) HasTextSelection() bool {
	return c.selectionStartCol >= 0 && c.selectionStartLine >= 0 &&
		(c.selectionEndCol != c.selectionStartCol || c.selectionEndLine != c.selectionStartLine)
}

// handleMouseClick starts a selection, or selects a word or paragraph on
// double and triple clicks.
func (c *Chat) handleMouseClick(x, y int) tea.Cmd {
	now := time.Now()

	if now.Sub(c.lastClickTime) <= doubleClickThreshold &&
		abs(x-c.lastClickX) <= clickTolerance &&
		abs(y-c.lastClickY) <= clickTolerance {
		c.clickCount++
	} else {
		c.clickCount = 1
	}

	c.lastClickTime = now
	c.lastClickX = x
	c.lastClickY = y

	switch c.clickCount {
	case 1:
		c.StartSelection(x, y)
	case 2:
		c.SelectWord(x, y)
		return c.CopySelectedText()
	case 3:
		c.SelectParagraph(x, y)
		c.clickCount = 0
		return c.CopySelectedText()
	}

	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SelectWord selects the word at the given position
func (c *Chat) SelectWord(col, line int) {
	lines := c.visibleLines()
	if line < 0 || line >= len(lines) {
		return
	}

	currentLine := ansi.Strip(lines[line])
	if col < 0 || col >= len(currentLine) {
		return
	}

	// walk back to the last word boundary before col
	startCol := 0
	gr := uniseg.NewGraphemes(currentLine[:col])
	pos := 0
	for gr.Next() {
		pos += len(gr.Str())
		if gr.IsWordBoundary() && pos < col {
			startCol = pos
		}
	}

	endCol := len(currentLine)
	gr = uniseg.NewGraphemes(currentLine[col:])
	pos = col
	for gr.Next() {
		pos += len(gr.Str())
		if gr.IsWordBoundary() {
			endCol = pos
			break
		}
	}

	c.selectionStartCol = startCol
	c.selectionStartLine = line
	c.selectionEndCol = endCol
	c.selectionEndLine = line
	c.selectionActive = false
}

// SelectParagraph selects the run of non-blank lines around line
func (c *Chat) SelectParagraph(col, line int) {
	lines := c.visibleLines()
	if line < 0 || line >= len(lines) {
		return
	}

	startLine := line
	endLine := line
	for startLine > 0 && strings.TrimSpace(ansi.Strip(lines[startLine-1])) != "" {
		startLine--
	}
	for endLine < len(lines)-1 && strings.TrimSpace(ansi.Strip(lines[endLine+1])) != "" {
		endLine++
	}

	c.selectionStartCol = 0
	c.selectionStartLine = startLine
	c.selectionEndCol = len(ansi.Strip(lines[endLine]))
	c.selectionEndLine = endLine
	c.selectionActive = false
}

// selectionArea returns the selection normalized to reading order.
func (c *Chat) selectionArea() (startCol, startLine, endCol, endLine int) {
	startCol = c.selectionStartCol
	startLine = c.selectionStartLine
	endCol = c.selectionEndCol
	endLine = c.selectionEndLine

	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}
	return
}

// GetSelectedText returns the selected text with styling removed.
func (c *Chat) GetSelectedText() string {
	if !c.HasTextSelection() {
		return ""
	}

	lines := c.visibleLines()
	startCol, startLine, endCol, endLine := c.selectionArea()

	var result strings.Builder
	for y := startLine; y <= endLine && y < len(lines); y++ {
		line := ansi.Strip(lines[y])

		lineStart, lineEnd := 0, len(line)
		if y == startLine {
			lineStart = startCol
		}
		if y == endLine {
			lineEnd = endCol
		}
		lineStart = max(lineStart, 0)
		lineEnd = min(lineEnd, len(line))
		if lineStart > lineEnd {
			lineStart = lineEnd
		}

		// pane lines are padded to the viewport width
		if lineStart < len(line) {
			result.WriteString(strings.TrimRight(line[lineStart:lineEnd], " "))
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}

	return strings.TrimSpace(result.String())
}

// CopySelectedText copies the selection and starts the flash
func (c *Chat) CopySelectedText() tea.Cmd {
	text := c.GetSelectedText()
	if text == "" {
		return nil
	}
	c.selectionFlashFrame = 0
	return tea.Batch(CopyToClipboard(text), SelectionFlashTick())
}

// selectionView paints the selection over the rendered pane.
func (c *Chat) selectionView(view string) string {
	if !c.HasTextSelection() {
		return view
	}

	width, height := c.viewportDims()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	startCol, startLine, endCol, endLine := c.selectionArea()

	var selBg, selFg color.Color
	if c.selectionFlashFrame == 0 {
		selBg = TextSelectionFlashStyle.GetBackground()
		selFg = TextSelectionFlashStyle.GetForeground()
	} else {
		selBg = TextSelectionStyle.GetBackground()
		selFg = TextSelectionStyle.GetForeground()
	}

	for y := startLine; y <= endLine && y < height; y++ {
		xStart, xEnd := 0, width
		if y == startLine {
			xStart = startCol
		}
		if y == endLine {
			xEnd = endCol
		}

		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}
