// Command go-jsonparse-report replays saved reports as Datadog APM spans: one
// "bench" span covering all runs, one "run" span per report and one "parse"
// span per measurement.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/felixge/go-jsonparse-bench/internal"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envF   = flag.String("env", "ci", "Datadog env tag")
		agentF = flag.String("agent", "", "Datadog agent address (default from environment)")
	)
	flag.Parse()
	if flag.Arg(0) == "" {
		return fmt.Errorf("error: no report dir (usage: go-jsonparse-report [-env env] <dir>)")
	}

	opts := []tracer.StartOption{
		tracer.WithEnv(*envF),
		tracer.WithService("go-jsonparse-bench"),
		tracer.WithServiceVersion("dev"),
	}
	if *agentF != "" {
		opts = append(opts, tracer.WithAgentAddr(*agentF))
	}
	tracer.Start(opts...)
	defer tracer.Stop()

	start, end, reports, err := readReports(flag.Arg(0))
	if err != nil {
		return err
	} else if len(reports) == 0 {
		return fmt.Errorf("no %s found in %s", internal.ReportFile, flag.Arg(0))
	}

	benchSpan := tracer.StartSpan(
		"bench",
		tracer.StartTime(start),
	)
	defer benchSpan.Finish(tracer.FinishTime(end))
	for _, r := range reports {
		runSpan := tracer.StartSpan(
			"run",
			tracer.StartTime(r.Start),
			tracer.ChildOf(benchSpan.Context()),
			tracer.Tag("id", r.ID),
			tracer.Tag("input", r.Input),
			tracer.Tag("input_size", r.InputSize),
			tracer.Tag("repeat", r.Repeat),
			tracer.Tag("clock", r.Clock),
			tracer.Tag("reduce", string(r.Reduce)),
			tracer.Tag("go_version", r.Env.GoVersion),
		)
		for _, m := range r.Sorted() {
			spanOpts := []ddtrace.StartSpanOption{
				tracer.ServiceName(m.Name),
				tracer.StartTime(m.Start),
				tracer.ChildOf(runSpan.Context()),
				tracer.Tag("trials", m.Trials),
				tracer.Tag("total_ns", int64(m.Total)),
				tracer.Tag("mean_ns", int64(m.Mean)),
			}
			if m.Reduce == internal.ReduceMinMaxMean {
				spanOpts = append(spanOpts,
					tracer.Tag("min_ns", int64(m.Min)),
					tracer.Tag("max_ns", int64(m.Max)),
				)
			}
			parseSpan := tracer.StartSpan("parse", spanOpts...)
			finishOpts := []ddtrace.FinishOption{tracer.FinishTime(m.Start.Add(m.Wall))}
			if m.Failed() {
				finishOpts = append(finishOpts, tracer.WithError(errors.New(m.Error)))
			}
			parseSpan.Finish(finishOpts...)
		}
		runSpan.Finish(tracer.FinishTime(r.Start.Add(r.Duration)))
	}
	fmt.Printf("Finished %d reports\n", len(reports))
	return nil
}

// readReports loads all reports below dir and returns the time range they
// cover.
func readReports(dir string) (start, end time.Time, reports []*internal.Report, err error) {
	err = internal.ReadReports(dir, func(_ string, r *internal.Report) error {
		if start.IsZero() || r.Start.Before(start) {
			start = r.Start
		}
		runEnd := r.Start.Add(r.Duration)
		if end.IsZero() || runEnd.After(end) {
			end = runEnd
		}
		reports = append(reports, r)
		return nil
	})
	return
}
