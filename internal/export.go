package internal

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
)

// ExportStatsd sends every successful measurement of r as statsd timings
// named <prefix>.total, .min, .max and .mean, tagged with the parser name.
func ExportStatsd(c StatsdConfig, r *Report) error {
	client, err := statsd.New(c.Addr, statsd.WithNamespace(c.Prefix+"."), statsd.WithTags(c.Tags))
	if err != nil {
		return fmt.Errorf("statsd: %w", err)
	}
	defer client.Close()

	for _, m := range r.Sorted() {
		if m.Failed() {
			continue
		}
		tags := []string{
			"parser:" + m.Name,
			"clock:" + m.Clock,
			"reduce:" + string(m.Reduce),
		}
		if err := client.Timing("total", m.Total, tags, 1); err != nil {
			return err
		}
		if m.Reduce == ReduceSum {
			continue
		}
		if m.Reduce == ReduceMinMaxMean {
			if err := client.Timing("min", m.Min, tags, 1); err != nil {
				return err
			}
			if err := client.Timing("max", m.Max, tags, 1); err != nil {
				return err
			}
		}
		if err := client.Timing("mean", m.Mean, tags, 1); err != nil {
			return err
		}
	}
	return client.Flush()
}
