package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// TabItem is one conversation as the tab strip shows it.
type TabItem struct {
	Title  string
	Unread int
}

// Tabs is the single-line strip of open conversations.
type Tabs struct {
	width  int
	items  []TabItem
	active string

	// rendered spans from the last View, for mouse hit-testing
	spans []tabSpan
}

type tabSpan struct {
	title      string
	start, end int
}

// NewTabs creates an empty tab strip
func NewTabs() *Tabs {
	return &Tabs{}
}

// SetWidth sets the strip width
func (t *Tabs) SetWidth(width int) {
	t.width = width
}

// SetTabs replaces the tabs and marks active as the focused one.
func (t *Tabs) SetTabs(items []TabItem, active string) {
	t.items = items
	t.active = active
}

// Active returns the focused tab's title
func (t *Tabs) Active() string {
	return t.active
}

func (t *Tabs) label(item TabItem) string {
	title := runewidth.Truncate(item.Title, MaxTabTitleWidth, "…")
	if item.Unread > 0 && item.Title != t.active {
		return title + " " + TabUnreadStyle.Render(fmt.Sprintf("(%d)", item.Unread))
	}
	return title
}

func (t *Tabs) render(item TabItem) string {
	if item.Title == t.active {
		return TabActiveStyle.Render(t.label(item))
	}
	return TabStyle.Render(t.label(item))
}

// firstVisible picks the leftmost tab to draw so the active tab fits.
func (t *Tabs) firstVisible(widths []int) int {
	activeIdx := 0
	for i, item := range t.items {
		if item.Title == t.active {
			activeIdx = i
			break
		}
	}
	first := 0
	for {
		used := 0
		for i := first; i <= activeIdx; i++ {
			used += widths[i]
		}
		if used <= t.width || first == activeIdx {
			return first
		}
		first++
	}
}

// View renders the strip, scrolling left tabs out of view when the
// focused one would not fit.
func (t *Tabs) View() string {
	t.spans = t.spans[:0]
	if len(t.items) == 0 {
		return lipgloss.NewStyle().Width(t.width).Render("")
	}

	rendered := make([]string, len(t.items))
	widths := make([]int, len(t.items))
	for i, item := range t.items {
		rendered[i] = t.render(item)
		widths[i] = lipgloss.Width(rendered[i])
	}

	first := 0
	if t.width > 0 {
		first = t.firstVisible(widths)
	}

	var sb strings.Builder
	x := 0
	for i := first; i < len(rendered); i++ {
		if t.width > 0 && x+widths[i] > t.width {
			break
		}
		sb.WriteString(rendered[i])
		t.spans = append(t.spans, tabSpan{title: t.items[i].Title, start: x, end: x + widths[i]})
		x += widths[i]
	}

	return lipgloss.NewStyle().Width(t.width).MaxHeight(TabsHeight).Render(sb.String())
}

// TabAt returns the title of the tab drawn at column x by the last View.
func (t *Tabs) TabAt(x int) (string, bool) {
	for _, s := range t.spans {
		if x >= s.start && x < s.end {
			return s.title, true
		}
	}
	return "", false
}
