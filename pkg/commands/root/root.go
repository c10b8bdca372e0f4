package root

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	slogctx "github.com/veqryn/slog-context"

	"github.com/isometry/rtdb-credentials/pkg/commands/export"
	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/commands/importer"
	"github.com/isometry/rtdb-credentials/pkg/commands/scaffold"
	"github.com/isometry/rtdb-credentials/pkg/commands/show"
	"github.com/isometry/rtdb-credentials/pkg/commands/validate"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/utils"
)

var rootFlags = flags.FlagValues{
	"log-format": {
		Kind:         "string",
		DefaultValue: "auto",
		Usage:        "log format (auto|json|text)",
	},
	"debug": {
		Kind:         "bool",
		DefaultValue: false,
		Usage:        "debug mode",
	},
	"log-level": {
		Shorthand:    "v",
		Kind:         "count",
		DefaultValue: 0,
		Usage:        "log level (-v=warn, -vv=info, -vvv=debug)",
	},
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtdbcred",
		Short: "Realtime database credential configuration",
		Long: `Load, validate and inspect the credentials a service needs to reach its
realtime database: database URL, project ID, service-account email and
private key.

Two configuration variants exist. The template variant is safe to publish and
is used for builds; the production variant carries real secrets and is never
committed.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			v := credctx.Viper(cmd.Context())
			flags.BindFlags(cmd, v)
			log := setupLogging(v, cmd.ErrOrStderr())
			cmd.SetContext(slogctx.NewCtx(cmd.Context(), log))
		},
	}

	rootFlags.Register(cmd.PersistentFlags(), true)

	cmd.AddCommand(validate.New())
	cmd.AddCommand(show.New())
	cmd.AddCommand(scaffold.New())
	cmd.AddCommand(importer.New())
	cmd.AddCommand(export.New())

	return cmd
}

func setupLogging(v *viper.Viper, w io.Writer) *slog.Logger {
	verbosity := v.GetInt("log-level")
	debugMode := v.GetBool("debug")
	logFormat := v.GetString("log-format")

	level := new(slog.LevelVar)
	level.Set(slog.LevelError - slog.Level(verbosity*4))

	handlerOpts := &slog.HandlerOptions{
		AddSource: debugMode,
		Level:     level,
	}

	// Resolve "auto" format based on TTY detection
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = utils.IsTTY(f)
	}
	useJSON := logFormat == "json" || (logFormat == "auto" && !isTTY)

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
