package scaffold

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/commands/shared"
	"github.com/isometry/rtdb-credentials/pkg/config"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

const header = `# Template credentials. Safe to commit.
# Copy to rtdb-credentials.yaml and replace every value before deploying;
# the production file must never be committed.
`

var scaffoldFlags = flags.FlagValues{
	"output": {
		Shorthand:    "O",
		Kind:         "string",
		DefaultValue: config.ConfigName("", credentials.KindTemplate) + ".yaml",
		Usage:        "output file path (- for stdout)",
	},
	"force": {
		Kind:         "bool",
		DefaultValue: false,
		Usage:        "overwrite an existing file",
	},
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the template credential configuration",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	scaffoldFlags.Register(cmd.Flags(), false)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	v := credctx.Viper(cmd.Context())
	flags.BindFlags(cmd, v)

	outputPath := v.GetString("output")

	data, err := config.TemplateDocument().Marshal(header)
	if err != nil {
		return err
	}

	if outputPath == "-" {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), string(data)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := shared.WriteFile(outputPath, data, 0o644, v.GetBool("force")); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Template configuration written to %s\n", outputPath)
	return nil
}
