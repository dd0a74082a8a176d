// Package style defines the visual styling for bento's terminal output.
//
// Colors come from an embedded YAML theme with adaptive light/dark values,
// so output stays readable on both terminal backgrounds. The renderer in
// this package turns resolutions and operation results into status lines.
package style

import (
	_ "embed"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed themes/default.yaml
var defaultTheme []byte

// colorDef is an adaptive color definition in the theme YAML.
type colorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

type theme struct {
	Colors map[string]colorDef `yaml:"colors"`
}

// Styles used across command output. Loaded from the embedded theme at
// init; a broken theme is a programming error and panics early.
var (
	TitleStyle   lipgloss.Style
	NormalStyle  lipgloss.Style
	MutedStyle   lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	PathStyle    lipgloss.Style
)

// Status indicators
var (
	SuccessIndicator string
	ErrorIndicator   string
	WarningIndicator string
	InfoIndicator    string
)

func init() {
	var t theme
	if err := yaml.Unmarshal(defaultTheme, &t); err != nil {
		panic("style: invalid embedded theme: " + err.Error())
	}

	color := func(name string) lipgloss.AdaptiveColor {
		def := t.Colors[name]
		return lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	TitleStyle = lipgloss.NewStyle().Foreground(color("heading")).Bold(true)
	NormalStyle = lipgloss.NewStyle().Foreground(color("text"))
	MutedStyle = lipgloss.NewStyle().Foreground(color("muted"))
	SuccessStyle = lipgloss.NewStyle().Foreground(color("success")).Bold(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(color("error")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(color("warning")).Bold(true)
	InfoStyle = lipgloss.NewStyle().Foreground(color("info"))
	PathStyle = lipgloss.NewStyle().Foreground(color("path")).Italic(true)

	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	InfoIndicator = InfoStyle.Render("•")
}

// Indent pads every rendered line by level*2 spaces.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

// Bold renders s in bold.
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
