// Command go-jsonparse-compare prints a table comparing the measurements of
// two saved reports.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/felixge/go-jsonparse-bench/internal"
	"github.com/olekukonko/tablewriter"
)

const usage = "usage: go-jsonparse-compare <old> <new>"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	if flag.NArg() != 2 {
		return fmt.Errorf("error: need two reports (%s)", usage)
	}
	before, err := readReport(flag.Arg(0))
	if err != nil {
		return err
	}
	after, err := readReport(flag.Arg(1))
	if err != nil {
		return err
	}
	if before.Fingerprint != after.Fingerprint {
		fmt.Fprintf(os.Stderr, "warning: reports were produced by different configs (%x vs %x)\n", before.Fingerprint, after.Fingerprint)
	}
	render(os.Stdout, compare(before, after))
	return nil
}

// readReport accepts a report file or an outdir containing one.
func readReport(path string) (*internal.Report, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, internal.ReportFile)
	}
	return internal.ReadReport(path)
}

type row struct {
	Operation string
	Old       time.Duration
	OldErr    string
	New       time.Duration
	NewErr    string
	// Delta is the relative change from Old to New in percent, only valid if
	// HasDelta.
	Delta    float64
	HasDelta bool
}

func compare(before, after *internal.Report) []*row {
	names := map[string]bool{}
	for _, r := range []*internal.Report{before, after} {
		for name := range r.Measurements {
			names[name] = true
		}
	}
	var rows []*row
	for name := range names {
		o, inOld := before.Measurements[name]
		n, inNew := after.Measurements[name]
		r := &row{
			Operation: name,
			Old:       o.Value(),
			OldErr:    cellErr(o, inOld),
			New:       n.Value(),
			NewErr:    cellErr(n, inNew),
		}
		if r.OldErr == "" && r.NewErr == "" && r.Old > 0 {
			r.Delta = (float64(r.New) - float64(r.Old)) / float64(r.Old) * 100
			r.HasDelta = true
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Operation < rows[j].Operation
	})
	return rows
}

func cellErr(m internal.Measurement, ok bool) string {
	switch {
	case !ok:
		return "missing"
	case m.Failed():
		return "failed"
	default:
		return ""
	}
}

func render(w io.Writer, rows []*row) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Operation", "Old", "New", "Delta"})
	tw.SetBorder(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	for _, r := range rows {
		tw.Append([]string{
			r.Operation,
			cell(r.Old, r.OldErr),
			cell(r.New, r.NewErr),
			delta(r),
		})
	}
	tw.Render()
}

func cell(d time.Duration, errStr string) string {
	if errStr != "" {
		return errStr
	}
	return internal.TruncateDuration(d).String()
}

func delta(r *row) string {
	if !r.HasDelta {
		return "~"
	}
	return fmt.Sprintf("%+.2f%%", r.Delta)
}
