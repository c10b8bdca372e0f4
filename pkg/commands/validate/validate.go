package validate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/isometry/rtdb-credentials/internal/output"
	"github.com/isometry/rtdb-credentials/pkg/commands/flags"
	"github.com/isometry/rtdb-credentials/pkg/commands/shared"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
	"github.com/isometry/rtdb-credentials/pkg/credentials"
)

// ErrInvalid is returned after the report has been printed.
var ErrInvalid = errors.New("credential validation failed")

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the credential configuration",
		Long: `Load the credential configuration, apply its sources and validate the
result without contacting the database.

The private key is never printed.

Examples:
  # Validate the production configuration in the current directory
  rtdbcred validate

  # Validate the publishable template
  rtdbcred validate --variant=template

  # Fail when a release would ship template credentials
  rtdbcred validate --require-production -o json`,
		Args:    cobra.NoArgs,
		PreRunE: setup,
		RunE:    run,
	}

	validateFlags.Register(cmd.Flags(), false)

	return cmd
}

func setup(cmd *cobra.Command, _ []string) error {
	flags.BindFlags(cmd, credctx.Viper(cmd.Context()))
	return nil
}

// Report is the outcome of a validation run.
type Report struct {
	Valid       bool                 `json:"valid"`
	Variant     credentials.Kind     `json:"variant"`
	File        string               `json:"file,omitempty"`
	Credentials *credentials.Summary `json:"credentials,omitempty"`
	Error       *ErrorReport         `json:"error,omitempty"`
}

type ErrorReport struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func newErrorReport(err error) *ErrorReport {
	var cfgErr *credentials.ConfigError
	if errors.As(err, &cfgErr) {
		return &ErrorReport{Kind: cfgErr.Kind.String(), Field: string(cfgErr.Field), Message: cfgErr.Reason}
	}
	return &ErrorReport{Kind: "LoadError", Message: err.Error()}
}

func run(cmd *cobra.Command, _ []string) error {
	v := credctx.Viper(cmd.Context())
	log := credctx.Logger(cmd.Context(), slog.String("command", "validate"))
	outCfg := output.ConfigFromViper(v)

	conf, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	report := Report{Variant: conf.Variant, File: conf.File}

	creds, err := conf.Resolve(cmd.Context())
	if err == nil && v.GetBool("require-production") {
		_, err = credentials.RequireProduction(creds)
	}
	if creds != nil {
		summary := creds.Redacted()
		report.Credentials = &summary
	}
	if err != nil {
		log.Debug("validation failed", "error", err)
		report.Error = newErrorReport(err)
	} else {
		report.Valid = true
	}

	if outCfg.Format == output.DefaultFormat {
		outputText(cmd.OutOrStdout(), report, outCfg)
	} else if err := output.FormatAndPrint(cmd.OutOrStdout(), report, outCfg); err != nil {
		return err
	}

	if !report.Valid {
		return fmt.Errorf("%w: %s", ErrInvalid, report.Error.Kind)
	}
	return nil
}

func outputText(w io.Writer, r Report, cfg output.Config) {
	c := cfg.Colors
	paint := func(color, s string) string { return c.Paint(cfg.Colorize, color, s) }

	source := r.File
	if source == "" {
		source = "no configuration file"
	}
	_, _ = fmt.Fprintf(w, "Credentials (%s variant, %s):\n", r.Variant, source)

	if s := r.Credentials; s != nil {
		kindColor := c.Template
		if s.Kind == credentials.KindProduction {
			kindColor = c.Production
		}
		mark := paint(c.Valid, "✔")
		if !r.Valid {
			mark = paint(c.Invalid, "✘")
		}
		_, _ = fmt.Fprintf(w, "  %s %s credentials for %s (%s)\n", mark, paint(kindColor, s.Kind.String()), s.ProjectID, s.Region)
		if s.Fingerprint != "" {
			_, _ = fmt.Fprintf(w, "    key fingerprint %s\n", s.Fingerprint)
		}
	}

	if e := r.Error; e != nil {
		field := ""
		if e.Field != "" {
			field = " (" + e.Field + ")"
		}
		_, _ = fmt.Fprintf(w, "  %s %s%s: %s\n", paint(c.Invalid, "✘"), e.Kind, field, e.Message)
	}
}
