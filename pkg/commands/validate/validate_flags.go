package validate

import (
	"github.com/isometry/rtdb-credentials/internal/output"
	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
)

var validateFlags = flags.Merge(
	flags.ConfigFlags(),
	flags.OutputFlags(output.DefaultFormat),
	flags.FlagValues{
		"require-production": {
			Shorthand:    "P",
			Kind:         "bool",
			DefaultValue: false,
			Usage:        "fail unless the credentials are production credentials",
		},
	},
)
