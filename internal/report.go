package internal

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportFile is the name a report is persisted under in an outdir.
const ReportFile = "report.yaml"

// Report maps operation names to their measurements, plus the metadata
// needed to compare it to other runs.
type Report struct {
	ID           string                 `yaml:"id"`
	Start        time.Time              `yaml:"start"`
	Duration     time.Duration          `yaml:"duration"`
	Env          Env                    `yaml:"env"`
	Input        string                 `yaml:"input"`
	InputSize    int                    `yaml:"input_size"`
	Repeat       int                    `yaml:"repeat"`
	Clock        string                 `yaml:"clock"`
	Reduce       Reduction              `yaml:"reduce"`
	Fingerprint  uint64                 `yaml:"fingerprint,omitempty"`
	Rusage       Rusage                 `yaml:"rusage"`
	Measurements map[string]Measurement `yaml:"measurements"`
}

type Env struct {
	GoVersion  string `yaml:"go_version"`
	GoOS       string `yaml:"go_os"`
	GoArch     string `yaml:"go_arch"`
	GoMaxProcs int    `yaml:"go_max_procs"`
	GoNumCPU   int    `yaml:"go_num_cpu"`
	// TODO: add kernel version
}

// Measurement is the reduced timing of one operation. Which of the duration
// fields are set depends on Reduce.
type Measurement struct {
	Name   string    `yaml:"name"`
	Trials int       `yaml:"trials"`
	Clock  string    `yaml:"clock"`
	Reduce Reduction `yaml:"reduce"`
	// Start and Wall cover all trials in wall time, regardless of Clock.
	Start time.Time     `yaml:"start"`
	Wall  time.Duration `yaml:"wall"`
	Total time.Duration `yaml:"total"`
	Min   time.Duration `yaml:"min,omitempty"`
	Max   time.Duration `yaml:"max,omitempty"`
	Mean  time.Duration `yaml:"mean,omitempty"`
	Error string        `yaml:"error,omitempty"`
	// Profiles lists the profile files written for this operation.
	Profiles []string `yaml:"profiles,omitempty"`
}

func (m Measurement) Failed() bool {
	return m.Error != ""
}

// Value is the headline number of m: the mean if the reduction has one,
// the total otherwise.
func (m Measurement) Value() time.Duration {
	if m.Reduce == ReduceSum {
		return m.Total
	}
	return m.Mean
}

// String renders m the way it is printed after "<name>: ".
func (m Measurement) String() string {
	switch {
	case m.Failed():
		return "failed: " + m.Error
	case m.Reduce == ReduceMinMaxMean:
		return fmt.Sprintf(
			"min: %s, max: %s, mid: %s",
			FormatDuration(m.Min),
			FormatDuration(m.Max),
			FormatDuration(m.Mean),
		)
	default:
		return FormatDuration(m.Value())
	}
}

func NewReport() *Report {
	return &Report{Measurements: map[string]Measurement{}}
}

func (r *Report) add(m Measurement) error {
	if _, ok := r.Measurements[m.Name]; ok {
		return fmt.Errorf("duplicate operation name: %q", m.Name)
	}
	r.Measurements[m.Name] = m
	return nil
}

// Names returns the operation names of r in lexicographic order.
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.Measurements))
	for name := range r.Measurements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the measurements of r ordered by name.
func (r *Report) Sorted() []Measurement {
	var ms []Measurement
	for _, name := range r.Names() {
		ms = append(ms, r.Measurements[name])
	}
	return ms
}

func (r *Report) WriteFile(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := NewReport()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// ReadReports calls cb for every report file found below dir.
func ReadReports(dir string, cb func(path string, r *Report) error) error {
	return filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		} else if info.IsDir() || filepath.Base(path) != ReportFile {
			return nil
		}
		r, err := ReadReport(path)
		if err != nil {
			return err
		}
		return cb(path, r)
	})
}
