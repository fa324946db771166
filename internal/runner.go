package internal

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/felixge/go-jsonparse-bench/parser"
	"github.com/google/uuid"
)

// Operation is a named parser under test.
type Operation struct {
	Name   string
	Parser parser.Parser
}

// Runner parses the Input document Repeat times with every operation and
// reduces the timings into a Report. Operations run one after another on the
// calling goroutine.
type Runner struct {
	Input      string
	Repeat     int
	Operations []Operation
	// Clock defaults to CPUClock.
	Clock Clock
	// Reduce defaults to ReduceSum.
	Reduce Reduction
	// FailFast aborts the run on the first failing operation. Otherwise the
	// failure is recorded in the operation's measurement and the run goes on.
	FailFast bool
	Profile  ProfileConfig
	Outdir   string
	// Fingerprint is copied into the report.
	Fingerprint uint64
	Log         *slog.Logger
}

func (r *Runner) Run() (*Report, error) {
	if r.Repeat < 1 {
		return nil, fmt.Errorf("%w: repeat=%d", ErrNoTrials, r.Repeat)
	}
	reduce := r.Reduce
	if reduce == "" {
		reduce = ReduceSum
	}
	if err := reduce.validate(); err != nil {
		return nil, err
	}
	clock := r.Clock
	if clock == nil {
		clock = CPUClock{}
	}
	seen := map[string]bool{}
	for _, op := range r.Operations {
		if seen[op.Name] {
			return nil, fmt.Errorf("duplicate operation name: %q", op.Name)
		}
		seen[op.Name] = true
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	data, err := os.ReadFile(r.Input)
	if err != nil {
		return nil, &IOError{Path: r.Input, Err: err}
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %w", r.Input, ErrInvalidInput)
	}

	report := NewReport()
	report.ID = uuid.NewString()
	report.Start = time.Now()
	report.Env = Env{
		GoVersion:  runtime.Version(),
		GoOS:       runtime.GOOS,
		GoArch:     runtime.GOARCH,
		GoMaxProcs: runtime.GOMAXPROCS(0),
		GoNumCPU:   runtime.NumCPU(),
	}
	report.Input = r.Input
	report.InputSize = len(data)
	report.Repeat = r.Repeat
	report.Clock = clock.Name()
	report.Reduce = reduce
	report.Fingerprint = r.Fingerprint

	before, err := getRusage()
	if err != nil {
		return nil, err
	}

	log.Info(
		"starting run",
		"input", r.Input,
		"size", humanize.Bytes(uint64(len(data))),
		"operations", len(r.Operations),
		"repeat", r.Repeat,
		"clock", clock.Name(),
		"reduce", reduce,
	)
	for _, op := range r.Operations {
		m, err := r.measure(op, data, clock, reduce)
		if err != nil {
			if r.FailFast {
				return nil, err
			}
			log.Warn("operation failed", "operation", op.Name, "error", err)
			m.Error = errStr(err)
		} else {
			log.Debug("operation done", "operation", op.Name, "result", m.String())
		}
		if err := report.add(m); err != nil {
			return nil, err
		}
	}

	after, err := getRusage()
	if err != nil {
		return nil, err
	}
	report.Rusage = Rusage{
		User:   after.User - before.User,
		System: after.System - before.System,
	}
	report.Duration = time.Since(report.Start)
	return report, nil
}

func (r *Runner) measure(op Operation, data []byte, clock Clock, reduce Reduction) (Measurement, error) {
	m := Measurement{Name: op.Name, Clock: clock.Name(), Reduce: reduce}
	prof := &Profiler{ProfileConfig: r.Profile, Outdir: r.Outdir, Name: op.Name}
	if err := prof.Start(); err != nil {
		return m, err
	}

	m.Start = time.Now()
	err := r.recoverTrials(op, data, clock, reduce, &m)
	m.Wall = time.Since(m.Start)

	files, stopErr := prof.Stop()
	m.Profiles = files
	if err == nil {
		err = stopErr
	}
	return m, err
}

// recoverTrials turns a panic inside a parser into an OperationError for the
// trial that was running, so profiles are still stopped and the run can go
// on with the next operation.
func (r *Runner) recoverTrials(op Operation, data []byte, clock Clock, reduce Reduction, m *Measurement) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &OperationError{Name: op.Name, Trial: m.Trials, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	return r.trials(op, data, clock, reduce, m)
}

func (r *Runner) trials(op Operation, data []byte, clock Clock, reduce Reduction, m *Measurement) error {
	if !reduce.perTrial() {
		start, err := clock.Now()
		if err != nil {
			return err
		}
		for i := 0; i < r.Repeat; i++ {
			m.Trials = i
			if _, err := op.Parser.Parse(data); err != nil {
				return &OperationError{Name: op.Name, Trial: i, Err: err}
			}
		}
		stop, err := clock.Now()
		if err != nil {
			return err
		}
		m.Trials = r.Repeat
		if m.Total, err = elapsed(start, stop); err != nil {
			return err
		}
		if reduce == ReduceMean {
			m.Mean = m.Total / time.Duration(r.Repeat)
		}
		return nil
	}

	samples := make([]time.Duration, 0, r.Repeat)
	for i := 0; i < r.Repeat; i++ {
		m.Trials = i
		start, err := clock.Now()
		if err != nil {
			return err
		}
		if _, err := op.Parser.Parse(data); err != nil {
			return &OperationError{Name: op.Name, Trial: i, Err: err}
		}
		stop, err := clock.Now()
		if err != nil {
			return err
		}
		dt, err := elapsed(start, stop)
		if err != nil {
			return err
		}
		samples = append(samples, dt)
	}
	m.Trials = len(samples)
	s, err := Summarize(samples)
	if err != nil {
		return err
	}
	m.Min, m.Max, m.Mean, m.Total = s.Min, s.Max, s.Mean, s.Total
	return nil
}
