package importer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/commands/shared"
	"github.com/isometry/rtdb-credentials/pkg/config"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
	"github.com/isometry/rtdb-credentials/pkg/credentials/source"
)

var importFlags = flags.FlagValues{
	"output": {
		Shorthand:    "O",
		Kind:         "string",
		DefaultValue: config.DefaultConfigName + ".yaml",
		Usage:        "output file path",
	},
	"database-url": {
		Kind:         "string",
		DefaultValue: "",
		Usage:        "database URL (default: derived from the project and --region)",
	},
	"region": {
		Kind:         "string",
		DefaultValue: "",
		Usage:        "database region used to derive the URL (default: us-central1)",
	},
	"force": {
		Kind:         "bool",
		DefaultValue: false,
		Usage:        "overwrite an existing file",
	},
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <service-account.json>",
		Short: "Convert a service-account key file to a production configuration",
		Long: `Read a service-account key file downloaded from the console, validate it as
production credentials and write it as a production configuration file with
owner-only permissions.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	importFlags.Register(cmd.Flags(), false)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	v := credctx.Viper(cmd.Context())
	flags.BindFlags(cmd, v)

	raw, err := source.Resolve(cmd.Context(), credentials.Raw{}, []source.Entry{
		{source.TypeFile: {"path": args[0]}},
	})
	if err != nil {
		return err
	}

	raw.DatabaseURL = v.GetString("database-url")
	if raw.DatabaseURL == "" && raw.ProjectID != "" {
		raw.DatabaseURL = credentials.DatabaseURLFor(raw.ProjectID, v.GetString("region"))
	}

	creds, err := credentials.Load(raw)
	if err != nil {
		return err
	}
	defer creds.Scrub()

	doc, err := config.ProductionDocument(creds)
	if err != nil {
		return err
	}
	data, err := doc.Marshal("")
	if err != nil {
		return err
	}

	outputPath := v.GetString("output")
	if err := shared.WriteFile(outputPath, data, 0o600, v.GetBool("force")); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Production configuration for %s written to %s\n", creds.ProjectID(), outputPath)
	return nil
}
