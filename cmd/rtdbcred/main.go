package main

import (
	"context"
	"fmt"
	"os"

	"github.com/isometry/rtdb-credentials/pkg/commands/root"
	"github.com/isometry/rtdb-credentials/pkg/credctx"
)

var (
	version string = "snapshot"
	commit  string = "unknown"
	date    string = "unknown"
)

func main() {
	cmd := root.New()
	cmd.Version = fmt.Sprintf("%s-%s (built %s)", version, commit, date)

	ctx := credctx.ContextWithViper(context.Background(), credctx.NewViper())
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
