package internal

import (
	"fmt"
	"time"
)

// Reduction selects how trial timings are collected and reduced.
type Reduction string

const (
	// ReduceSum times all trials as one span and reports the total.
	ReduceSum Reduction = "sum"
	// ReduceMean times all trials as one span and reports total/trials.
	ReduceMean Reduction = "mean"
	// ReduceMinMaxMean times every trial individually and reports the
	// min, max and mean.
	ReduceMinMaxMean Reduction = "minmaxmean"
)

// perTrial reports whether r needs a timing per trial rather than one span
// around the whole loop.
func (r Reduction) perTrial() bool {
	return r == ReduceMinMaxMean
}

func (r Reduction) validate() error {
	switch r {
	case ReduceSum, ReduceMean, ReduceMinMaxMean:
		return nil
	default:
		return fmt.Errorf("unknown reduction: %q", string(r))
	}
}

type Summary struct {
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	Total time.Duration
}

// Summarize reduces samples to their min, max, truncated mean and total.
func Summarize(samples []time.Duration) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoTrials
	}
	s := Summary{Min: samples[0], Max: samples[0]}
	for _, d := range samples {
		if d < s.Min {
			s.Min = d
		}
		if d > s.Max {
			s.Max = d
		}
		s.Total += d
	}
	s.Mean = s.Total / time.Duration(len(samples))
	return s, nil
}
