package output

import (
	"os"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// DefaultFormat is the default output format.
const DefaultFormat = "text"

// Config holds configuration for formatting command output.
type Config struct {
	Format   string // output format (text, json, yaml)
	Compact  bool
	Colorize bool           // colorize output (for supported formats)
	Colors   ResolvedColors // resolved ANSI color codes
}

// ConfigFromViper creates a Config from the output, compact and color flags
// plus an optional "colors" configuration block.
func ConfigFromViper(v *viper.Viper) Config {
	format := v.GetString("output")
	if format == "" {
		format = DefaultFormat
	}

	// invalid color config falls back to defaults
	colorCfg := DefaultColorConfig()
	_ = v.UnmarshalKey("colors", &colorCfg)

	return Config{
		Format:   format,
		Compact:  v.GetBool("compact"),
		Colorize: shouldColorize(v.GetString("color")),
		Colors:   colorCfg.Resolve(),
	}
}

// shouldColorize determines whether to colorize output based on the color flag value.
func shouldColorize(colorFlag string) bool {
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
