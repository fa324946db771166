package internal

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixge/go-jsonparse-bench/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const smallDoc = `{"a":1,"b":[true,false,null]}`

// fakeClock only advances when a stepParser tells it to.
type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Name() string                { return "fake" }
func (c *fakeClock) Now() (time.Duration, error) { return c.now, nil }
func (c *fakeClock) advance(d time.Duration)     { c.now += d }

// countParser counts its calls and returns the input length.
type countParser struct {
	calls int
}

func (p *countParser) Parse(data []byte) (interface{}, error) {
	p.calls++
	return len(data), nil
}

// stepParser advances clock by the next step on every call, cycling through
// steps.
type stepParser struct {
	clock *fakeClock
	steps []time.Duration
	calls int
}

func (p *stepParser) Parse(data []byte) (interface{}, error) {
	p.clock.advance(p.steps[p.calls%len(p.steps)])
	p.calls++
	return nil, nil
}

type failParser struct {
	after int
	calls int
}

var errBoom = errors.New("boom")

func (p *failParser) Parse(data []byte) (interface{}, error) {
	p.calls++
	if p.calls > p.after {
		return nil, errBoom
	}
	return nil, nil
}

// panicParser panics on the call after the first `after` calls.
type panicParser struct {
	after int
	calls int
}

func (p *panicParser) Parse(data []byte) (interface{}, error) {
	p.calls++
	if p.calls > p.after {
		panic("library bug")
	}
	return nil, nil
}

// backwardsClock goes back in time on every read.
type backwardsClock struct {
	now time.Duration
}

func (c *backwardsClock) Name() string { return "backwards" }
func (c *backwardsClock) Now() (time.Duration, error) {
	c.now -= time.Millisecond
	return c.now, nil
}

func writeInput(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunnerCountChars(t *testing.T) {
	p := &countParser{}
	r := &Runner{
		Input:      writeInput(t, smallDoc),
		Repeat:     3,
		Operations: []Operation{{Name: "count_chars", Parser: p}},
		Log:        quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
	require.Equal(t, []string{"count_chars"}, report.Names())

	m := report.Measurements["count_chars"]
	assert.Equal(t, 3, m.Trials)
	assert.Equal(t, ReduceSum, m.Reduce)
	assert.Equal(t, "cpu", m.Clock)
	assert.False(t, m.Failed())
	assert.Equal(t, len(smallDoc), report.InputSize)
	assert.NotEmpty(t, report.ID)
}

func TestRunnerInvocationCount(t *testing.T) {
	for _, reduce := range []Reduction{ReduceSum, ReduceMean, ReduceMinMaxMean} {
		for _, n := range []int{1, 2, 17} {
			a, b := &countParser{}, &countParser{}
			r := &Runner{
				Input:  writeInput(t, smallDoc),
				Repeat: n,
				Reduce: reduce,
				Clock:  NewWallClock(),
				Operations: []Operation{
					{Name: "a", Parser: a},
					{Name: "b", Parser: b},
				},
				Log: quiet,
			}
			report, err := r.Run()
			require.NoError(t, err)
			assert.Equal(t, n, a.calls, "reduce=%s n=%d", reduce, n)
			assert.Equal(t, n, b.calls, "reduce=%s n=%d", reduce, n)
			assert.Equal(t, []string{"a", "b"}, report.Names())
		}
	}
}

func TestRunnerSumIsOneSpan(t *testing.T) {
	clock := &fakeClock{}
	p := &stepParser{clock: clock, steps: []time.Duration{time.Millisecond}}
	r := &Runner{
		Input:      writeInput(t, smallDoc),
		Repeat:     5,
		Clock:      clock,
		Operations: []Operation{{Name: "step", Parser: p}},
		Log:        quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	m := report.Measurements["step"]
	assert.Equal(t, 5*time.Millisecond, m.Total)
	assert.Zero(t, m.Mean)
	assert.Equal(t, "step: 5ms", m.Name+": "+m.String())
}

func TestRunnerSumNonDecreasing(t *testing.T) {
	var prev time.Duration
	for n := 1; n <= 64; n *= 2 {
		clock := &fakeClock{}
		r := &Runner{
			Input:  writeInput(t, smallDoc),
			Repeat: n,
			Clock:  clock,
			Operations: []Operation{
				{Name: "step", Parser: &stepParser{clock: clock, steps: []time.Duration{time.Microsecond}}},
			},
			Log: quiet,
		}
		report, err := r.Run()
		require.NoError(t, err)
		total := report.Measurements["step"].Total
		assert.GreaterOrEqual(t, total, prev)
		prev = total
	}
}

func TestRunnerMean(t *testing.T) {
	clock := &fakeClock{}
	p := &stepParser{clock: clock, steps: []time.Duration{100, 200, 400}}
	r := &Runner{
		Input:      writeInput(t, smallDoc),
		Repeat:     3,
		Clock:      clock,
		Reduce:     ReduceMean,
		Operations: []Operation{{Name: "step", Parser: p}},
		Log:        quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	m := report.Measurements["step"]
	assert.Equal(t, time.Duration(700), m.Total)
	assert.Equal(t, time.Duration(233), m.Mean)
	assert.Equal(t, "233ns", m.String())
}

func TestRunnerMinMaxMean(t *testing.T) {
	clock := &fakeClock{}
	p := &stepParser{clock: clock, steps: []time.Duration{200, 100, 300}}
	r := &Runner{
		Input:      writeInput(t, smallDoc),
		Repeat:     3,
		Clock:      clock,
		Reduce:     ReduceMinMaxMean,
		Operations: []Operation{{Name: "step", Parser: p}},
		Log:        quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	m := report.Measurements["step"]
	assert.Equal(t, time.Duration(100), m.Min)
	assert.Equal(t, time.Duration(300), m.Max)
	assert.Equal(t, time.Duration(200), m.Mean)
	assert.Equal(t, time.Duration(600), m.Total)
	assert.Equal(t, "min: 100ns, max: 300ns, mid: 200ns", m.String())
}

func TestRunnerMissingInput(t *testing.T) {
	p := &countParser{}
	r := &Runner{
		Input:      filepath.Join(t.TempDir(), "missing.json"),
		Repeat:     3,
		Operations: []Operation{{Name: "count_chars", Parser: p}},
		Log:        quiet,
	}
	report, err := r.Run()
	require.Nil(t, report)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Zero(t, p.calls)
}

func TestRunnerInvalidInput(t *testing.T) {
	p := &countParser{}
	r := &Runner{
		Input:      writeInput(t, `{"a":`),
		Repeat:     1,
		Operations: []Operation{{Name: "count_chars", Parser: p}},
		Log:        quiet,
	}
	_, err := r.Run()
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, p.calls)
}

func TestRunnerNoTrials(t *testing.T) {
	for _, n := range []int{0, -1} {
		r := &Runner{Input: "does-not-matter.json", Repeat: n}
		_, err := r.Run()
		require.ErrorIs(t, err, ErrNoTrials)
	}
}

func TestRunnerDuplicateNames(t *testing.T) {
	r := &Runner{
		Input:  writeInput(t, smallDoc),
		Repeat: 1,
		Operations: []Operation{
			{Name: "a", Parser: &countParser{}},
			{Name: "a", Parser: &countParser{}},
		},
		Log: quiet,
	}
	_, err := r.Run()
	require.Error(t, err)
}

func TestRunnerBadReduction(t *testing.T) {
	r := &Runner{Input: writeInput(t, smallDoc), Repeat: 1, Reduce: "median"}
	_, err := r.Run()
	require.Error(t, err)
}

func TestRunnerIsolatesFailures(t *testing.T) {
	good := &countParser{}
	bad := &failParser{after: 2}
	r := &Runner{
		Input:  writeInput(t, smallDoc),
		Repeat: 5,
		Operations: []Operation{
			{Name: "bad", Parser: bad},
			{Name: "good", Parser: good},
		},
		Log: quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	require.Equal(t, []string{"bad", "good"}, report.Names())
	assert.Equal(t, 5, good.calls)
	assert.Equal(t, 3, bad.calls)

	m := report.Measurements["bad"]
	assert.True(t, m.Failed())
	assert.Equal(t, 2, m.Trials)
	assert.Equal(t, "failed: operation bad: trial 2: boom", m.String())
	assert.False(t, report.Measurements["good"].Failed())
}

func TestRunnerFailFast(t *testing.T) {
	good := &countParser{}
	r := &Runner{
		Input:    writeInput(t, smallDoc),
		Repeat:   5,
		FailFast: true,
		Operations: []Operation{
			{Name: "bad", Parser: &failParser{}},
			{Name: "good", Parser: good},
		},
		Log: quiet,
	}
	report, err := r.Run()
	require.Nil(t, report)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "bad", opErr.Name)
	assert.Equal(t, 0, opErr.Trial)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, good.calls)
}

func TestRunnerClockSkew(t *testing.T) {
	for _, reduce := range []Reduction{ReduceSum, ReduceMinMaxMean} {
		r := &Runner{
			Input:      writeInput(t, smallDoc),
			Repeat:     2,
			Reduce:     reduce,
			Clock:      &backwardsClock{},
			FailFast:   true,
			Operations: []Operation{{Name: "a", Parser: &countParser{}}},
			Log:        quiet,
		}
		_, err := r.Run()
		require.ErrorIs(t, err, ErrClockSkew, "reduce=%s", reduce)
	}
}

func TestRunnerClockSkewIsolated(t *testing.T) {
	for _, reduce := range []Reduction{ReduceSum, ReduceMinMaxMean} {
		a, b := &countParser{}, &countParser{}
		r := &Runner{
			Input:  writeInput(t, smallDoc),
			Repeat: 2,
			Reduce: reduce,
			Clock:  &backwardsClock{},
			Operations: []Operation{
				{Name: "a", Parser: a},
				{Name: "b", Parser: b},
			},
			Log: quiet,
		}
		report, err := r.Run()
		require.NoError(t, err, "reduce=%s", reduce)
		require.Equal(t, []string{"a", "b"}, report.Names())
		for _, m := range report.Sorted() {
			assert.True(t, m.Failed(), "reduce=%s op=%s", reduce, m.Name)
			assert.Contains(t, m.Error, ErrClockSkew.Error())
		}
		assert.NotZero(t, b.calls, "reduce=%s", reduce)
	}
}

func TestRunnerIsolatesPanics(t *testing.T) {
	for _, reduce := range []Reduction{ReduceSum, ReduceMinMaxMean} {
		dir := t.TempDir()
		bad := &panicParser{after: 1}
		good := &countParser{}
		r := &Runner{
			Input:   writeInput(t, smallDoc),
			Repeat:  3,
			Reduce:  reduce,
			Clock:   NewWallClock(),
			Profile: ProfileConfig{Mem: true},
			Outdir:  dir,
			Operations: []Operation{
				{Name: "bad", Parser: bad},
				{Name: "good", Parser: good},
			},
			Log: quiet,
		}
		report, err := r.Run()
		require.NoError(t, err, "reduce=%s", reduce)
		require.Equal(t, []string{"bad", "good"}, report.Names())
		assert.Equal(t, 3, good.calls)

		m := report.Measurements["bad"]
		assert.True(t, m.Failed())
		assert.Equal(t, 1, m.Trials)
		assert.Equal(t, "operation bad: trial 1: panic: library bug", m.Error)
		// The profile started for the panicking operation is still written.
		assert.Equal(t, []string{"bad.mem.pprof"}, m.Profiles)
		assert.FileExists(t, filepath.Join(dir, "bad.mem.pprof"))
	}
}

func TestRunnerPanicFailFast(t *testing.T) {
	good := &countParser{}
	r := &Runner{
		Input:    writeInput(t, smallDoc),
		Repeat:   3,
		FailFast: true,
		Operations: []Operation{
			{Name: "bad", Parser: &panicParser{}},
			{Name: "good", Parser: good},
		},
		Log: quiet,
	}
	report, err := r.Run()
	require.Nil(t, report)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "bad", opErr.Name)
	assert.Equal(t, 0, opErr.Trial)
	assert.Zero(t, good.calls)
}

func TestRunnerRealParsers(t *testing.T) {
	var ops []Operation
	for _, name := range []string{"std", "jsoniter", "goccy", "gjson", "jsonparser", "gabs", "jstream", "easyjson"} {
		p, err := parser.New(name, nil)
		require.NoError(t, err)
		ops = append(ops, Operation{Name: name, Parser: p})
	}
	r := &Runner{
		Input:      writeInput(t, smallDoc),
		Repeat:     10,
		Reduce:     ReduceMinMaxMean,
		Clock:      NewWallClock(),
		Operations: ops,
		Log:        quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	require.Len(t, report.Measurements, len(ops))
	for _, m := range report.Sorted() {
		assert.False(t, m.Failed(), m.Name)
		assert.Equal(t, 10, m.Trials)
		assert.LessOrEqual(t, m.Min, m.Mean)
		assert.LessOrEqual(t, m.Mean, m.Max)
	}
}

func TestRunnerProfiles(t *testing.T) {
	dir := t.TempDir()
	r := &Runner{
		Input:      writeInput(t, smallDoc),
		Repeat:     2,
		Profile:    ProfileConfig{Mem: true},
		Outdir:     dir,
		Operations: []Operation{{Name: "a", Parser: &countParser{}}},
		Log:        quiet,
	}
	report, err := r.Run()
	require.NoError(t, err)
	files := report.Measurements["a"].Profiles
	require.Equal(t, []string{"a.mem.pprof"}, files)
	assert.FileExists(t, filepath.Join(dir, files[0]))
}
