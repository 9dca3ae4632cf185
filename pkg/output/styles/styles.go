// Package styles defines the visual styling for dupkeep's terminal
// output.
//
// Styles use semantic names and adaptive colors that adjust to light
// and dark terminal themes. Rendering degrades to plain text when
// stdout is not a terminal, so scripted and tested output is stable.
package styles

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

var colorEnabled bool

func init() {
	colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) &&
		termenv.EnvColorProfile() != termenv.Ascii

	if err := loadStyles(defaultStyles); err != nil {
		panic(fmt.Sprintf("failed to load embedded styles: %v", err))
	}
}

// loadStyles parses the YAML style sheet into the registry
func loadStyles(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor)
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	StyleRegistry = make(map[string]lipgloss.Style)
	for name, def := range config.Styles {
		style := lipgloss.NewStyle()
		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if def.Foreground != "" {
			if color, ok := colors[def.Foreground]; ok {
				style = style.Foreground(color)
			}
		}
		StyleRegistry[name] = style
	}

	return nil
}

// Render applies the named style to text. Unknown styles and non-TTY
// output both fall back to the plain string.
func Render(name, text string) string {
	if !colorEnabled {
		return text
	}
	style, ok := StyleRegistry[name]
	if !ok {
		return text
	}
	return style.Render(text)
}

// SetColorEnabled overrides TTY detection; used by tests.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}
