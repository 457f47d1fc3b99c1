// Package theme provides the light and dark palettes and the styles derived
// from them. A Theme is a value: toggling returns a new one.
package theme

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

type Palette struct {
	Background          lipgloss.Color
	BackgroundCompleted lipgloss.Color
	HeaderBackground    lipgloss.Color
	Text                lipgloss.Color
	Icon                lipgloss.Color
	Primary             lipgloss.Color
	Red                 lipgloss.Color
	Border              lipgloss.Color
	Gray                lipgloss.Color
}

var lightPalette = Palette{
	Background:          lipgloss.Color("#FFFFFF"),
	BackgroundCompleted: lipgloss.Color("#F0F0F0"),
	HeaderBackground:    lipgloss.Color("#F5F5F5"),
	Text:                lipgloss.Color("#1A1A1A"),
	Icon:                lipgloss.Color("#8A8A8A"),
	Primary:             lipgloss.Color("#2F6FED"),
	Red:                 lipgloss.Color("#D93025"),
	Border:              lipgloss.Color("#DDDDDD"),
	Gray:                lipgloss.Color("#666666"),
}

var darkPalette = Palette{
	Background:          lipgloss.Color("#121212"),
	BackgroundCompleted: lipgloss.Color("#1E1E1E"),
	HeaderBackground:    lipgloss.Color("#1F1F1F"),
	Text:                lipgloss.Color("#EDEDED"),
	Icon:                lipgloss.Color("#7A7A7A"),
	Primary:             lipgloss.Color("#5C9DFF"),
	Red:                 lipgloss.Color("#FF6B6B"),
	Border:              lipgloss.Color("#333333"),
	Gray:                lipgloss.Color("#A0A0A0"),
}

// Theme pairs a mode with its palette and the styles built from it.
type Theme struct {
	Mode    Mode
	Palette Palette
	Styles  Styles
}

func New(mode Mode) Theme {
	p := lightPalette
	if mode == Dark {
		p = darkPalette
	} else {
		mode = Light
	}
	return Theme{Mode: mode, Palette: p, Styles: newStyles(p)}
}

// Toggled returns the theme for the other mode.
func (t Theme) Toggled() Theme {
	if t.Mode == Dark {
		return New(Light)
	}
	return New(Dark)
}

type Styles struct {
	App           lipgloss.Style
	Header        lipgloss.Style
	SectionHeader lipgloss.Style
	Item          lipgloss.Style
	ItemCompleted lipgloss.Style
	Selected      lipgloss.Style
	Title         lipgloss.Style
	TitleDone     lipgloss.Style
	Meta          lipgloss.Style
	Dialog        lipgloss.Style
	Danger        lipgloss.Style
	Button        lipgloss.Style
	ButtonMuted   lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
}

func newStyles(p Palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Foreground(p.Text),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Padding(0, 1),
		SectionHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.HeaderBackground).
			Padding(0, 1),
		Item: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Background),
		ItemCompleted: lipgloss.NewStyle().
			Foreground(p.Icon).
			Background(p.BackgroundCompleted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Title: lipgloss.NewStyle().
			Foreground(p.Text),
		TitleDone: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(p.Icon),
		Meta: lipgloss.NewStyle().
			Foreground(p.Gray),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Background(p.HeaderBackground).
			Foreground(p.Text).
			Padding(1, 2),
		Danger: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Red),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.Primary).
			Padding(0, 1),
		ButtonMuted: lipgloss.NewStyle().
			Foreground(p.Icon).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(p.Primary),
		Help: lipgloss.NewStyle().
			Foreground(p.Icon),
	}
}

// Slot is where the chosen mode is remembered between runs.
type Slot interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Restore returns the stored theme, or fallback when none is stored.
func Restore(ctx context.Context, slot Slot, key string, fallback Mode) (Theme, error) {
	v, ok, err := slot.Get(ctx, key)
	if err != nil {
		return New(fallback), err
	}
	if !ok {
		return New(fallback), nil
	}
	return New(ParseMode(v)), nil
}

func Persist(ctx context.Context, slot Slot, key string, t Theme) error {
	return slot.Set(ctx, key, string(t.Mode))
}
