package internal

import (
	"fmt"
	"syscall"
	"time"
)

// Clock reads a monotonically increasing time offset.
type Clock interface {
	Name() string
	Now() (time.Duration, error)
}

func NewClock(name string) (Clock, error) {
	switch name {
	case "cpu":
		return CPUClock{}, nil
	case "wall":
		return NewWallClock(), nil
	default:
		return nil, fmt.Errorf("unknown clock: %q", name)
	}
}

// CPUClock reports the user+system CPU time consumed by the process so far.
// Time the process spends descheduled is not counted.
type CPUClock struct{}

func (CPUClock) Name() string { return "cpu" }

func (CPUClock) Now() (time.Duration, error) {
	ru, err := getRusage()
	if err != nil {
		return 0, err
	}
	return ru.User + ru.System, nil
}

// WallClock reports monotonic wall time since its creation.
type WallClock struct {
	epoch time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{epoch: time.Now()}
}

func (*WallClock) Name() string { return "wall" }

func (c *WallClock) Now() (time.Duration, error) {
	return time.Since(c.epoch), nil
}

type Rusage struct {
	User   time.Duration `yaml:"user"`
	System time.Duration `yaml:"system"`
}

func getRusage() (Rusage, error) {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return Rusage{}, err
	}
	return Rusage{
		User:   toDuration(ru.Utime),
		System: toDuration(ru.Stime),
	}, nil
}

func toDuration(t syscall.Timeval) time.Duration {
	return time.Second*time.Duration(t.Sec) + time.Microsecond*time.Duration(t.Usec)
}

// elapsed returns stop-start, or ErrClockSkew if stop is before start.
func elapsed(start, stop time.Duration) (time.Duration, error) {
	if stop < start {
		return 0, fmt.Errorf("%w: start=%s stop=%s", ErrClockSkew, start, stop)
	}
	return stop - start, nil
}
