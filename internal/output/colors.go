package output

import "github.com/mgutz/ansi"

// ColorConfig holds semantic color names.
// Color names follow mgutz/ansi format: "red", "green+b" (bold), "white+d" (dim), etc.
type ColorConfig struct {
	Valid      string `mapstructure:"valid"`
	Invalid    string `mapstructure:"invalid"`
	Production string `mapstructure:"production"`
	Template   string `mapstructure:"template"`
	Key        string `mapstructure:"key"`
	Secret     string `mapstructure:"secret"`
}

// ResolvedColors holds pre-computed ANSI escape codes.
type ResolvedColors struct {
	Reset      string
	Valid      string
	Invalid    string
	Production string
	Template   string
	Key        string
	Secret     string
}

// DefaultColorConfig returns the default color configuration.
func DefaultColorConfig() ColorConfig {
	return ColorConfig{
		Valid:      "green",
		Invalid:    "red",
		Production: "green+b",
		Template:   "yellow",
		Key:        "cyan",
		Secret:     "white+d",
	}
}

// Resolve converts semantic color names to ANSI escape codes.
func (c ColorConfig) Resolve() ResolvedColors {
	return ResolvedColors{
		Reset:      ansi.ColorCode("reset"),
		Valid:      ansi.ColorCode(c.Valid),
		Invalid:    ansi.ColorCode(c.Invalid),
		Production: ansi.ColorCode(c.Production),
		Template:   ansi.ColorCode(c.Template),
		Key:        ansi.ColorCode(c.Key),
		Secret:     ansi.ColorCode(c.Secret),
	}
}

// Paint wraps s in color when colorize is set.
func (r ResolvedColors) Paint(colorize bool, color, s string) string {
	if !colorize || color == "" {
		return s
	}
	return color + s + r.Reset
}
