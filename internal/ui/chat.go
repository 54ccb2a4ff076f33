package ui

import (
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/router"
)

// pane is the scrollback of a single conversation. Every conversation
// keeps its own viewport so switching tabs preserves scroll position.
type pane struct {
	viewport viewport.Model
	messages []router.Message
	// rendered holds one entry per message, wrapped to the viewport width.
	rendered []string
}

func newPane(width, height int) *pane {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SetWidth(width)
	vp.SetHeight(height)
	return &pane{viewport: vp}
}

// Chat is the message area for the focused conversation plus the composer.
type Chat struct {
	panes        map[string]*pane
	focused      string
	input        textarea.Model
	width        int
	height       int
	inputFocused bool

	// Text selection state, in viewport-relative coordinates
	selectionStartCol   int
	selectionStartLine  int
	selectionEndCol     int
	selectionEndLine    int
	selectionActive     bool
	selectionFlashFrame int

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type a message, or /w user to whisper..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	applyComposerStyles(&ti)

	c := &Chat{
		panes: make(map[string]*pane),
		input: ti,
	}
	c.SelectionClear()
	c.selectionFlashFrame = -1
	return c
}

func (c *Chat) viewportSize() (int, int) {
	ctx := GetViewContext()
	w := ctx.InnerWidth(c.width)
	h := ctx.InnerHeight(c.height - InputTotalHeight)
	if w < 1 {
		w = DefaultWrapWidth
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// applyComposerStyles drops the textarea's background so the terminal's
// own background shows through.
func applyComposerStyles(ta *textarea.Model) {
	styles := ta.Styles()

	base := lipgloss.NewStyle()
	text := lipgloss.NewStyle().Foreground(ColorText)
	placeholder := lipgloss.NewStyle().Foreground(ColorTextMuted)

	styles.Focused.Base = base
	styles.Focused.Text = text
	styles.Focused.Placeholder = placeholder
	styles.Focused.CursorLine = text
	styles.Focused.Prompt = text
	styles.Blurred = styles.Focused

	ta.SetStyles(styles)
}

// SetSize sets the chat panel dimensions, re-wrapping every pane.
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	w, h := c.viewportSize()
	for _, p := range c.panes {
		atBottom := p.viewport.AtBottom()
		p.viewport.SetWidth(w)
		p.viewport.SetHeight(h)
		c.rerender(p)
		if atBottom {
			p.viewport.GotoBottom()
		}
	}

	c.input.SetWidth(GetViewContext().InnerWidth(width) - InputPaddingWidth)
}

func (c *Chat) pane(title string) *pane {
	p, ok := c.panes[title]
	if !ok {
		w, h := c.viewportSize()
		p = newPane(w, h)
		c.panes[title] = p
	}
	return p
}

// SetFocusedConversation switches the visible pane. The previous pane
// keeps its scroll offset.
func (c *Chat) SetFocusedConversation(title string) {
	if title != c.focused {
		c.SelectionClear()
	}
	c.focused = title
	c.pane(title)
}

// FocusedConversation returns the title of the visible pane
func (c *Chat) FocusedConversation() string {
	return c.focused
}

// Append adds msg to the pane for title. Only the focused pane follows
// new content, and only when it was already showing the bottom.
func (c *Chat) Append(title string, msg router.Message) {
	p := c.pane(title)
	follow := title == c.focused && p.viewport.AtBottom()
	p.messages = append(p.messages, msg)
	p.rendered = append(p.rendered, RenderMessage(msg, paneWidth(p)))
	p.viewport.SetContentLines(slices.Clone(p.rendered))
	if follow {
		p.viewport.GotoBottom()
	}
}

// Restyle re-renders every pane with the current theme and message
// colors. Scroll offsets are kept, and a pane showing its last line still
// does so afterwards.
func (c *Chat) Restyle() {
	applyComposerStyles(&c.input)
	for _, p := range c.panes {
		atBottom := p.viewport.AtBottom()
		c.rerender(p)
		if atBottom {
			p.viewport.GotoBottom()
		}
	}
}

// Clear drops every pane, used when a session ends.
func (c *Chat) Clear() {
	c.panes = make(map[string]*pane)
	c.focused = ""
	c.SelectionClear()
}

// YOffset returns the scroll offset of title's pane.
func (c *Chat) YOffset(title string) int {
	if p, ok := c.panes[title]; ok {
		return p.viewport.YOffset()
	}
	return 0
}

// AtBottom reports whether title's pane shows its last line.
func (c *Chat) AtBottom(title string) bool {
	if p, ok := c.panes[title]; ok {
		return p.viewport.AtBottom()
	}
	return true
}

// ScrollUp moves the focused pane up by n lines.
func (c *Chat) ScrollUp(n int) {
	if p, ok := c.panes[c.focused]; ok {
		p.viewport.ScrollUp(n)
	}
}

// ScrollToBottom moves the focused pane to its last line.
func (c *Chat) ScrollToBottom() {
	if p, ok := c.panes[c.focused]; ok {
		p.viewport.GotoBottom()
	}
}

func paneWidth(p *pane) int {
	if w := p.viewport.Width(); w > 0 {
		return w
	}
	return DefaultWrapWidth
}

// rerender rebuilds the rendered cache of p after a resize or restyle.
func (c *Chat) rerender(p *pane) {
	width := paneWidth(p)
	p.rendered = p.rendered[:0]
	for _, m := range p.messages {
		p.rendered = append(p.rendered, RenderMessage(m, width))
	}
	p.viewport.SetContentLines(slices.Clone(p.rendered))
}

// RenderMessage renders one message as "[15:04] sender> body", wrapped
// to width. Fenced code blocks in the body are syntax highlighted.
func RenderMessage(m router.Message, width int) string {
	var sb strings.Builder
	if !m.Time.IsZero() {
		sb.WriteString(ChatTimeStyle.Render(m.Time.Format("[15:04]")))
		sb.WriteString(" ")
	}
	if m.Sender != "" {
		sb.WriteString(ChatSenderStyle.Render(m.Sender + ">"))
		sb.WriteString(" ")
	}
	body := m.Body
	if strings.Contains(body, "```") {
		body = HighlightMarkdown(body)
	} else {
		body = MessageStyle(m.Style).Render(body)
	}
	sb.WriteString(body)
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

// SetInputFocused sets whether the composer takes keystrokes
func (c *Chat) SetInputFocused(focused bool) {
	c.inputFocused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsInputFocused returns the composer focus state
func (c *Chat) IsInputFocused() bool {
	return c.inputFocused
}

// GetInput returns the composer text, trimmed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// InputEmpty reports whether the composer holds only whitespace
func (c *Chat) InputEmpty() bool {
	return c.GetInput() == ""
}

// ClearInput clears the composer
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the composer text
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertInput inserts text at the cursor
func (c *Chat) InsertInput(text string) {
	c.input.InsertString(text)
}

// Update handles key, mouse and animation messages for the chat area.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	p := c.pane(c.focused)

	switch msg := msg.(type) {
	case SelectionFlashTickMsg:
		if c.selectionFlashFrame >= 0 {
			c.selectionFlashFrame = -1
			c.SelectionClear()
		}
		return c, nil

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			return c, c.handleMouseClick(msg.X-1, msg.Y-1)
		}
		return c, nil

	case tea.MouseMotionMsg:
		if c.selectionActive {
			c.EndSelection(msg.X-1, msg.Y-1)
		}
		return c, nil

	case tea.MouseReleaseMsg:
		if c.selectionActive {
			c.EndSelection(msg.X-1, msg.Y-1)
			c.SelectionStop()
			return c, c.CopySelectedText()
		}
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.PgUp, keys.PgDown, keys.Home, keys.End:
			var cmd tea.Cmd
			p.viewport, cmd = p.viewport.Update(msg)
			return c, cmd
		case keys.Escape:
			if c.HasTextSelection() {
				c.SelectionClear()
				return c, nil
			}
		}
		if c.inputFocused {
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}
		return c, nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return c, cmd
}

// View renders the focused pane above the composer.
func (c *Chat) View() string {
	panelStyle := PanelFocusedStyle
	if !c.inputFocused {
		panelStyle = PanelStyle
	}

	var content string
	if p, ok := c.panes[c.focused]; ok {
		content = c.selectionView(p.viewport.View())
	}

	chatPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(content)

	inputStyle := ChatInputStyle
	if c.inputFocused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}

// visibleLines returns the focused pane's currently drawn lines.
func (c *Chat) visibleLines() []string {
	p, ok := c.panes[c.focused]
	if !ok {
		return nil
	}
	return strings.Split(p.viewport.View(), "\n")
}

// viewportDims returns the focused pane's viewport size.
func (c *Chat) viewportDims() (int, int) {
	p, ok := c.panes[c.focused]
	if !ok {
		return 0, 0
	}
	return p.viewport.Width(), p.viewport.Height()
}
