package show

import (
	"github.com/spf13/cobra"

	"github.com/isometry/rtdb-credentials/internal/output"
	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/commands/shared"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

var showFlags = flags.Merge(
	flags.ConfigFlags(),
	flags.OutputFlags("yaml"),
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded credentials with the private key redacted",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	showFlags.Register(cmd.Flags(), false)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	v := credctx.Viper(cmd.Context())
	flags.BindFlags(cmd, v)

	return shared.WithCredentials(cmd, func(creds *credentials.CredentialSet) error {
		return output.FormatAndPrint(cmd.OutOrStdout(), creds.Redacted(), output.ConfigFromViper(v))
	})
}
