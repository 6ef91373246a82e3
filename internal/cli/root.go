package cli

import (
	"log/slog"
	"os"

	"dcolors/internal/lib/logger/handlers/slogpretty"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "dcolorsctl",
		Short: "Administrative tools for the D'Colors catalog",
		Long: `dcolorsctl manages the D'Colors painting catalog from the command line.

It can bulk-import paintings described in a YAML manifest, running every image
through the same optimizer the admin upload form uses, and generate bcrypt
hashes for the admin password in the service config.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	logger := func() *slog.Logger {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		opts := slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: level},
		}
		return slog.New(opts.NewPrettyHandler(os.Stderr))
	}

	cmd.AddCommand(newImportCmd(logger))
	cmd.AddCommand(newHashPasswordCmd())

	return cmd
}
