package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/felixge/go-jsonparse-bench/parser"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/hashstructure/v2"
	"gopkg.in/yaml.v3"
)

// ReadConfig reads, defaults and validates the yaml config at path.
func ReadConfig(path string) (c Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	return ParseConfig(data)
}

// ParseConfig is ReadConfig for an in-memory document. Empty data yields the
// default config.
func ParseConfig(data []byte) (c Config, err error) {
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	c.setDefaults()
	return c, c.Validate()
}

type Config struct {
	Input      string            `yaml:"input" validate:"required"`
	Repeat     int               `yaml:"repeat" validate:"min=1"`
	Clock      string            `yaml:"clock" validate:"oneof=cpu wall"`
	Reduce     Reduction         `yaml:"reduce" validate:"oneof=sum mean minmaxmean"`
	FailFast   bool              `yaml:"fail_fast"`
	Output     string            `yaml:"output" validate:"oneof=text table yaml"`
	Outdir     string            `yaml:"outdir"`
	Profile    ProfileConfig     `yaml:"profile"`
	Statsd     StatsdConfig      `yaml:"statsd"`
	Operations []OperationConfig `yaml:"operations" validate:"dive"`
}

const (
	DefaultInput  = "testdata/test.json"
	DefaultRepeat = 1000
)

func (c *Config) setDefaults() {
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Repeat == 0 {
		c.Repeat = DefaultRepeat
	}
	if c.Clock == "" {
		c.Clock = "cpu"
	}
	if c.Reduce == "" {
		c.Reduce = ReduceSum
	}
	if c.Output == "" {
		c.Output = "text"
	}
	if c.Statsd.Addr != "" && c.Statsd.Prefix == "" {
		c.Statsd.Prefix = "jsonbench"
	}
	if len(c.Operations) == 0 {
		for _, name := range parser.Names() {
			c.Operations = append(c.Operations, OperationConfig{Name: name})
		}
	}
	for i := range c.Operations {
		op := &c.Operations[i]
		if op.Parser == "" {
			op.Parser = op.Name
		}
	}
}

var validate = validator.New()

// Validate checks field constraints and that operation names are unique.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("bad config: %w", err)
	}
	seen := map[string]bool{}
	for _, op := range c.Operations {
		if seen[op.Name] {
			return fmt.Errorf("bad config: duplicate operation name: %q", op.Name)
		}
		seen[op.Name] = true
	}
	if c.Profile.Enabled() && c.Outdir == "" {
		return errors.New("bad config: profile requires outdir")
	}
	return nil
}

// Runner returns a Runner for c, constructing every configured parser.
func (c Config) Runner() (*Runner, error) {
	clock, err := NewClock(c.Clock)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		Input:    c.Input,
		Repeat:   c.Repeat,
		Clock:    clock,
		Reduce:   c.Reduce,
		FailFast: c.FailFast,
		Profile:  c.Profile,
		Outdir:   c.Outdir,
	}
	for _, oc := range c.Operations {
		var args []byte
		if oc.Args.Kind != 0 {
			if args, err = yaml.Marshal(&oc.Args); err != nil {
				return nil, err
			}
		}
		p, err := parser.New(oc.Parser, args)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", oc.Name, err)
		}
		r.Operations = append(r.Operations, Operation{Name: oc.Name, Parser: p})
	}
	return r, nil
}

// Fingerprint hashes the parts of c that affect measurements, so reports of
// comparable runs can be matched up.
func (c Config) Fingerprint() (uint64, error) {
	type opKey struct {
		Name   string
		Parser string
		Args   string
	}
	key := struct {
		Input  string
		Repeat int
		Clock  string
		Reduce Reduction
		Ops    []opKey
	}{c.Input, c.Repeat, c.Clock, c.Reduce, nil}
	for _, op := range c.Operations {
		var args []byte
		if op.Args.Kind != 0 {
			var err error
			if args, err = yaml.Marshal(&op.Args); err != nil {
				return 0, err
			}
		}
		key.Ops = append(key.Ops, opKey{op.Name, op.Parser, string(args)})
	}
	return hashstructure.Hash(key, hashstructure.FormatV2, nil)
}

type OperationConfig struct {
	Name string `yaml:"name" validate:"required"`
	// Parser is the registered parser name, it defaults to Name. Setting it
	// allows benchmarking one library with different args.
	Parser string    `yaml:"parser"`
	Args   yaml.Node `yaml:"args"`
}

type ProfileConfig struct {
	CPU     bool `yaml:"cpu"`
	Mem     bool `yaml:"mem"`
	MemRate int  `yaml:"mem_rate"`
	Trace   bool `yaml:"trace"`
}

func (p ProfileConfig) Enabled() bool {
	return p.CPU || p.Mem || p.Trace
}

type StatsdConfig struct {
	Addr   string   `yaml:"addr"`
	Prefix string   `yaml:"prefix"`
	Tags   []string `yaml:"tags"`
}
