package parser

import (
	"fmt"

	"github.com/felixge/go-jsonparse-bench/fixture"
)

// Target selects what a decoding parser unmarshals into.
type Target string

const (
	// TargetAny decodes into a generic interface{} tree.
	TargetAny Target = "any"
	// TargetFixture decodes into []fixture.Record, for inputs produced by
	// the fixture generator.
	TargetFixture Target = "fixture"
)

func (t Target) validate() error {
	switch t {
	case "", TargetAny, TargetFixture:
		return nil
	default:
		return fmt.Errorf("unknown target: %q", string(t))
	}
}

// New returns a fresh pointer to decode into.
func (t Target) New() interface{} {
	if t == TargetFixture {
		return &[]fixture.Record{}
	}
	var v interface{}
	return &v
}
