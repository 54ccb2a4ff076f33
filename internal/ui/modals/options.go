package modals

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"github.com/zhubert/parley/internal/config"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/session"
)

// ThemeOption is a selectable theme.
type ThemeOption struct {
	Key  string
	Name string
}

// OptionsState edits message colors, notifications, theme and transport.
type OptionsState struct {
	whisper       string
	errorColor    string
	personal      string
	notifications bool
	theme         string
	transport     string

	originalTheme string
	form          *huh.Form
}

func (*OptionsState) modalState() {}

func (*OptionsState) Kind() Kind { return KindOptions }

func (s *OptionsState) PreferredWidth() int { return ModalWidthWide }

func (s *OptionsState) Title() string { return "Options" }

func (s *OptionsState) Help() string {
	return "Tab: next field  ctrl+r: default colors  Enter: save  Esc: cancel"
}

func (s *OptionsState) Render() string {
	return renderDialog(s, s.form.View())
}

func (s *OptionsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Colors returns the edited message colors, upper-cased.
func (s *OptionsState) Colors() config.Colors {
	return config.Colors{
		Whisper:  strings.ToUpper(strings.TrimSpace(s.whisper)),
		Error:    strings.ToUpper(strings.TrimSpace(s.errorColor)),
		Personal: strings.ToUpper(strings.TrimSpace(s.personal)),
	}
}

// NotificationsEnabled returns the notifications toggle.
func (s *OptionsState) NotificationsEnabled() bool { return s.notifications }

// Theme returns the selected theme key.
func (s *OptionsState) Theme() string { return s.theme }

// ThemeChanged reports whether a different theme was picked.
func (s *OptionsState) ThemeChanged() bool { return s.theme != s.originalTheme }

// Transport returns the selected transport.
func (s *OptionsState) Transport() string { return s.transport }

// Validate checks the color fields.
func (s *OptionsState) Validate() error {
	c := s.Colors()
	for name, v := range map[string]string{"whisper": c.Whisper, "error": c.Error, "personal": c.Personal} {
		if !config.ValidColor(v) {
			return perrors.InputInvalid(fmt.Sprintf("%s color %q is not #RRGGBB", name, v))
		}
	}
	return nil
}

func validateColor(v string) error {
	if !config.ValidColor(strings.TrimSpace(v)) {
		return perrors.InputInvalid("use #RRGGBB")
	}
	return nil
}

// NewOptionsState creates the dialog from the current settings.
func NewOptionsState(colors config.Colors, notifications bool, themes []ThemeOption, theme, transport string) *OptionsState {
	s := &OptionsState{
		whisper:       colors.Whisper,
		errorColor:    colors.Error,
		personal:      colors.Personal,
		notifications: notifications,
		theme:         theme,
		transport:     transport,
		originalTheme: theme,
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i, t := range themes {
		themeOptions[i] = huh.NewOption(t.Name, t.Key)
	}

	s.form = newForm(ModalWidthWide-10,
		huh.NewGroup(
			huh.NewInput().
				Title("Whisper color").
				CharLimit(7).
				Validate(validateColor).
				Value(&s.whisper),
			huh.NewInput().
				Title("Error color").
				CharLimit(7).
				Validate(validateColor).
				Value(&s.errorColor),
			huh.NewInput().
				Title("Personal color").
				Description("Your own messages").
				CharLimit(7).
				Validate(validateColor).
				Value(&s.personal),
		).Title("Message colors"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Desktop notifications").
				Affirmative("On").
				Negative("Off").
				Value(&s.notifications),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&s.theme),
			huh.NewSelect[string]().
				Title("Transport").
				Description("Used on the next connect").
				Options(
					huh.NewOption("TCP", session.TCP),
					huh.NewOption("WebSocket", session.WebSocket),
				).
				Inline(true).
				Value(&s.transport),
		).Title("General"),
	)
	return s
}
