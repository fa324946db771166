package internal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// WriteReport writes r to w in the given output format: "text", "table" or
// "yaml".
func WriteReport(w io.Writer, r *Report, format string) error {
	switch format {
	case "", "text":
		return WriteText(w, r)
	case "table":
		return WriteTable(w, r)
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format: %q", format)
	}
}

// WriteText writes one "<name>: <measurement>" line per operation, sorted by
// name.
func WriteText(w io.Writer, r *Report) error {
	for _, m := range r.Sorted() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", m.Name, m); err != nil {
			return err
		}
	}
	return nil
}

func WriteTable(w io.Writer, r *Report) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Operation", "Trials", "Total", "Min", "Max", "Mean", "Error"})
	tw.SetBorder(false)
	tw.SetCenterSeparator("")
	tw.SetColumnSeparator("")
	tw.SetRowSeparator("")
	tw.SetHeaderLine(false)
	tw.SetAutoWrapText(false)
	for _, m := range r.Sorted() {
		row := []string{m.Name, strconv.Itoa(m.Trials), "", "", "", "", m.Error}
		if !m.Failed() {
			row[2] = TruncateDuration(m.Total).String()
			if m.Reduce == ReduceMinMaxMean {
				row[3] = TruncateDuration(m.Min).String()
				row[4] = TruncateDuration(m.Max).String()
			}
			if m.Reduce != ReduceSum {
				row[5] = TruncateDuration(m.Mean).String()
			}
		}
		tw.Append(row)
	}
	tw.Render()
	return nil
}
