package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/felixge/go-jsonparse-bench/fixture"
	"github.com/spf13/cobra"
)

func newFixtureCmd() *cobra.Command {
	var (
		records int
		out     string
	)
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Generate a synthetic JSON input document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return writeFixture(cmd.OutOrStdout(), records)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := writeFixture(f, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			if info, err := os.Stat(out); err == nil {
				slog.Info("wrote fixture", "path", out, "records", records, "size", humanize.Bytes(uint64(info.Size())))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&records, "records", "n", 1000, "Number of records to generate")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func writeFixture(w io.Writer, records int) error {
	bw := bufio.NewWriter(w)
	if err := fixture.Generate(bw, records); err != nil {
		return err
	}
	return bw.Flush()
}
