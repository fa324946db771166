package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixge/go-jsonparse-bench/internal"
)

// Coordinator runs the benchmark described in a config file and takes care
// of printing, persisting and exporting the report.
type Coordinator struct {
	// Config is the path to the yaml config file. The default config is used
	// if it's empty.
	Config string
	// Out receives the printed report.
	Out io.Writer
	Log *slog.Logger
}

func (c *Coordinator) Run() error {
	log := c.Log
	if log == nil {
		log = slog.Default()
	}

	config, err := c.readConfig()
	if err != nil {
		return err
	}
	runner, err := config.Runner()
	if err != nil {
		return err
	}
	if runner.Fingerprint, err = config.Fingerprint(); err != nil {
		return err
	}
	runner.Log = log

	if config.Outdir != "" {
		if err := os.MkdirAll(config.Outdir, 0755); err != nil {
			return err
		}
	}

	report, err := runner.Run()
	if err != nil {
		return err
	}
	if err := internal.WriteReport(c.Out, report, config.Output); err != nil {
		return err
	}

	if config.Outdir != "" {
		path := filepath.Join(config.Outdir, internal.ReportFile)
		if err := report.WriteFile(path); err != nil {
			return err
		}
		log.Info("wrote report", "path", path)
	}
	if config.Statsd.Addr != "" {
		if err := internal.ExportStatsd(config.Statsd, report); err != nil {
			return err
		}
		log.Info("exported report", "statsd", config.Statsd.Addr)
	}

	var failed int
	for _, m := range report.Measurements {
		if m.Failed() {
			failed++
		}
	}
	if failed > 0 {
		log.Warn(fmt.Sprintf("%d of %d operations failed", failed, len(report.Measurements)))
	}
	return nil
}

func (c *Coordinator) readConfig() (internal.Config, error) {
	if c.Config == "" {
		return internal.ParseConfig(nil)
	}
	return internal.ReadConfig(c.Config)
}
