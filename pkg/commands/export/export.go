package export

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/commands/shared"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

var exportFlags = flags.Merge(
	flags.ConfigFlags(),
	flags.FlagValues{
		"output": {
			Shorthand:    "O",
			Kind:         "string",
			DefaultValue: "",
			Usage:        "service-account key file to write (required)",
		},
		"force": {
			Kind:         "bool",
			DefaultValue: false,
			Usage:        "overwrite an existing file",
		},
	},
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write production credentials as a service-account key file",
		Long: `Write the production credentials as a Google service-account key document,
the form expected by database client libraries.

The document contains the private key, so it is only ever written to a file
with owner-only permissions. Template credentials are refused.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	exportFlags.Register(cmd.Flags(), false)

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	v := credctx.Viper(cmd.Context())
	flags.BindFlags(cmd, v)

	outputPath := v.GetString("output")
	if outputPath == "" || outputPath == "-" {
		return errors.New("export requires --output: the key document is never written to stdout")
	}

	return shared.WithCredentials(cmd, func(creds *credentials.CredentialSet) error {
		data, err := creds.ServiceAccountJSON()
		if err != nil {
			return err
		}

		if err := shared.WriteFile(outputPath, data, 0o600, v.GetBool("force")); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Service-account key for %s written to %s\n", creds.ClientEmail(), outputPath)
		return nil
	})
}
