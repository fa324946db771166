package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "go-jsonparse-bench [config]",
		Short: "Benchmark JSON parsing libraries against an input document",
		Long: "Parses the configured input document repeatedly with every configured\n" +
			"JSON library and prints the timings sorted by name. Without a config\n" +
			"file testdata/test.json is parsed 1000 times by every library.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &Coordinator{Out: cmd.OutOrStdout()}
			if len(args) > 0 {
				c.Config = args[0]
			}
			return c.Run()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.AddCommand(newFixtureCmd(), newParsersCmd())
	return root
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
