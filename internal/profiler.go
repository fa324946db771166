package internal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
)

// Profiler captures the profiles enabled in ProfileConfig around one
// operation and writes them to Outdir as <Name>.<kind>.
type Profiler struct {
	ProfileConfig
	Outdir string
	Name   string

	bufs map[string]*bytes.Buffer
}

type profiler struct {
	Kind    string
	Enabled func(ProfileConfig) bool
	Init    func(ProfileConfig)
	Start   func(io.Writer) error
	Stop    func(io.Writer) error
}

var profilers = []profiler{
	{
		Kind:    "cpu.pprof",
		Enabled: func(c ProfileConfig) bool { return c.CPU },
		Start: func(w io.Writer) error {
			return pprof.StartCPUProfile(w)
		},
		Stop: func(_ io.Writer) error {
			pprof.StopCPUProfile()
			return nil
		},
	},

	{
		Kind:    "mem.pprof",
		Enabled: func(c ProfileConfig) bool { return c.Mem },
		Init: func(c ProfileConfig) {
			if c.MemRate != 0 {
				runtime.MemProfileRate = c.MemRate
			}
		},
		Stop: func(w io.Writer) error {
			return pprof.Lookup("allocs").WriteTo(w, 0)
		},
	},

	{
		Kind:    "trace.out",
		Enabled: func(c ProfileConfig) bool { return c.Trace },
		Start: func(w io.Writer) error {
			return trace.Start(w)
		},
		Stop: func(_ io.Writer) error {
			trace.Stop()
			return nil
		},
	},
}

func (p *Profiler) Start() error {
	p.bufs = make(map[string]*bytes.Buffer)
	for _, prof := range profilers {
		if !prof.Enabled(p.ProfileConfig) {
			continue
		}
		if prof.Init != nil {
			prof.Init(p.ProfileConfig)
		}
		buf := new(bytes.Buffer)
		if prof.Start != nil {
			if err := prof.Start(buf); err != nil {
				p.Stop()
				return fmt.Errorf("start %s profile: %w", prof.Kind, err)
			}
		}
		p.bufs[prof.Kind] = buf
	}
	return nil
}

// Stop stops all started profiles and returns the names of the files it
// wrote. The first error is returned, but every profile is stopped.
func (p *Profiler) Stop() ([]string, error) {
	var files []string
	var firstErr error
	for _, prof := range profilers {
		buf, ok := p.bufs[prof.Kind]
		if !ok {
			continue
		}
		delete(p.bufs, prof.Kind)
		if prof.Stop != nil {
			if err := prof.Stop(buf); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}
		file := fmt.Sprintf("%s.%s", strings.ReplaceAll(p.Name, string(filepath.Separator), "_"), prof.Kind)
		if err := os.WriteFile(filepath.Join(p.Outdir, file), buf.Bytes(), 0644); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		files = append(files, file)
	}
	return files, firstErr
}
