package flags

import (
	"maps"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/isometry/rtdb-credentials/pkg/config"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

// FlagValue represents a single flag definition with metadata
type FlagValue struct {
	Shorthand    string
	Kind         string
	DefaultValue any
	NoOptDefault string
	Usage        string
}

// FlagValues is a map of flag names to their definitions
type FlagValues map[string]FlagValue

// Register adds all flags in the set to the given pflag.FlagSet
func (f FlagValues) Register(flagSet *pflag.FlagSet, sort bool) {
	for flagName, flag := range f {
		flag.BuildFlag(flagSet, flagName)
	}
	flagSet.SortFlags = sort
}

// BuildFlag creates a pflag from the FlagValue definition
func (f *FlagValue) BuildFlag(flagSet *pflag.FlagSet, flagName string) {
	switch f.Kind {
	case "bool":
		flagSet.BoolP(flagName, f.Shorthand, f.DefaultValue.(bool), f.Usage)
	case "count":
		flagSet.CountP(flagName, f.Shorthand, f.Usage)
	case "int":
		flagSet.IntP(flagName, f.Shorthand, f.DefaultValue.(int), f.Usage)
	case "string":
		flagSet.StringP(flagName, f.Shorthand, f.DefaultValue.(string), f.Usage)
	case "stringSlice":
		flagSet.StringSliceP(flagName, f.Shorthand, f.DefaultValue.([]string), f.Usage)
	case "duration":
		flagSet.DurationP(flagName, f.Shorthand, f.DefaultValue.(time.Duration), f.Usage)
	}

	if f.NoOptDefault != "" {
		flag := flagSet.Lookup(flagName)
		flag.NoOptDefVal = f.NoOptDefault
	}
}

// Merge combines multiple FlagValues maps into one
func Merge(flagSets ...FlagValues) FlagValues {
	result := make(FlagValues)
	for _, fs := range flagSets {
		maps.Copy(result, fs)
	}
	return result
}

// BindFlags binds all command flags to the given viper instance, including
// persistent flags inherited from parent commands.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

// ConfigPaths returns the config-path and config-name values from the given viper.
func ConfigPaths(v *viper.Viper) (paths []string, name string) {
	return v.GetStringSlice("config-path"), v.GetString("config-name")
}

// Variant returns the configuration variant selected by --variant.
func Variant(v *viper.Viper) (credentials.Kind, error) {
	return credentials.ParseKind(v.GetString("variant"))
}

// Common flag definitions that can be reused across commands

// ConfigFlags returns flags for configuration file settings
func ConfigFlags() FlagValues {
	return FlagValues{
		"config-path": {
			Kind:         "stringSlice",
			DefaultValue: []string{".", "/config"},
			Usage:        "configuration paths",
		},
		"config-name": {
			Kind:         "string",
			DefaultValue: config.DefaultConfigName,
			Usage:        "configuration name (the template variant appends .template)",
		},
		"variant": {
			Kind:         "string",
			DefaultValue: credentials.KindProduction.String(),
			Usage:        "configuration variant (production|template)",
		},
	}
}

// OutputFlags returns flags for output formatting
func OutputFlags(defaultFormat string) FlagValues {
	return FlagValues{
		"output": {
			Shorthand:    "o",
			Kind:         "string",
			DefaultValue: defaultFormat,
			Usage:        "output format",
		},
		"compact": {
			Kind:         "bool",
			DefaultValue: false,
			Usage:        "compact JSON output",
		},
		"color": {
			Kind:         "string",
			DefaultValue: "auto",
			Usage:        "colorize output: auto, always, never",
		},
	}
}
