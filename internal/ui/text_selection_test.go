package ui

import (
	"testing"

	"github.com/zhubert/parley/internal/router"
)

func selectionChat(bodies ...string) *Chat {
	c := newTestChat()
	for _, b := range bodies {
		c.Append("Lobby", router.Message{Body: b})
	}
	return c
}

func TestStartEndSelection(t *testing.T) {
	c := newTestChat()
	c.StartSelection(5, 10)
	if c.selectionStartCol != 5 || c.selectionStartLine != 10 || !c.selectionActive {
		t.Fatalf("unexpected start state: col=%d line=%d active=%v",
			c.selectionStartCol, c.selectionStartLine, c.selectionActive)
	}

	c.EndSelection(20, 12)
	if c.selectionEndCol != 20 || c.selectionEndLine != 12 {
		t.Errorf("end = (%d, %d), want (20, 12)", c.selectionEndCol, c.selectionEndLine)
	}

	c.SelectionStop()
	if c.selectionActive {
		t.Error("SelectionStop should end the drag")
	}
	if !c.HasTextSelection() {
		t.Error("selection should remain after SelectionStop")
	}

	c.SelectionClear()
	if c.HasTextSelection() {
		t.Error("SelectionClear should drop the selection")
	}
}

func TestEndSelection_InactiveIsNoop(t *testing.T) {
	c := newTestChat()
	c.EndSelection(20, 12)
	if c.selectionEndCol != -1 || c.selectionEndLine != -1 {
		t.Errorf("expected no change when inactive, got (%d, %d)", c.selectionEndCol, c.selectionEndLine)
	}
}

func TestHasTextSelection(t *testing.T) {
	tests := []struct {
		name                                 string
		startCol, startLine, endCol, endLine int
		want                                 bool
	}{
		{"cleared", -1, -1, -1, -1, false},
		{"same point", 5, 5, 5, 5, false},
		{"same line", 5, 5, 10, 5, true},
		{"next line", 5, 5, 5, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChat()
			c.selectionStartCol = tt.startCol
			c.selectionStartLine = tt.startLine
			c.selectionEndCol = tt.endCol
			c.selectionEndLine = tt.endLine
			if got := c.HasTextSelection(); got != tt.want {
				t.Errorf("HasTextSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSelectedText(t *testing.T) {
	tests := []struct {
		name                                 string
		startCol, startLine, endCol, endLine int
		want                                 string
	}{
		{"single line", 0, 0, 5, 0, "hello"},
		{"backwards drag", 5, 0, 0, 0, "hello"},
		{"two lines", 6, 0, 3, 1, "world\nfoo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := selectionChat("hello world", "foo bar")
			c.selectionStartCol = tt.startCol
			c.selectionStartLine = tt.startLine
			c.selectionEndCol = tt.endCol
			c.selectionEndLine = tt.endLine
			if got := c.GetSelectedText(); got != tt.want {
				t.Errorf("GetSelectedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectWord(t *testing.T) {
	tests := []struct {
		name string
		col  int
		want string
	}{
		{"start of word", 6, "world"},
		{"middle of word", 8, "world"},
		{"first word", 2, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := selectionChat("hello world")
			c.SelectWord(tt.col, 0)
			if got := c.GetSelectedText(); got != tt.want {
				t.Errorf("SelectWord(%d) selected %q, want %q", tt.col, got, tt.want)
			}
		})
	}
}

func TestSelectWord_OutOfRange(t *testing.T) {
	c := selectionChat("hello")
	c.SelectWord(2, 100)
	if c.HasTextSelection() {
		t.Error("SelectWord on a missing line should not select")
	}
}

func TestSelectParagraph(t *testing.T) {
	c := selectionChat("first line", "second line")
	c.SelectParagraph(0, 1)

	if got := c.GetSelectedText(); got != "first line\nsecond line" {
		t.Errorf("SelectParagraph selected %q", got)
	}
}

func TestCopySelectedText_Empty(t *testing.T) {
	c := newTestChat()
	if cmd := c.CopySelectedText(); cmd != nil {
		t.Error("CopySelectedText with no selection should return nil")
	}
}

func TestSelectionFlashClears(t *testing.T) {
	c := selectionChat("hello world")
	c.SelectWord(0, 0)
	if cmd := c.CopySelectedText(); cmd == nil {
		t.Fatal("expected a copy command")
	}
	if c.selectionFlashFrame != 0 {
		t.Fatal("copy should start the flash")
	}

	c, _ = c.Update(SelectionFlashTickMsg{})
	if c.HasTextSelection() {
		t.Error("flash tick should clear the selection")
	}
}
