package parser

import (
	"errors"

	simdjson "github.com/simdjson/simdjson-go"
)

var errUnsupportedCPU = errors.New("simdjson: cpu lacks AVX2/CLMUL support")

// SIMDJSON reuses its tape between calls. Setup succeeds on every CPU, so an
// unsupported CPU shows up as a failed measurement instead of aborting the
// whole roster.
type SIMDJSON struct {
	reuse *simdjson.ParsedJson
}

func (s *SIMDJSON) Parse(data []byte) (interface{}, error) {
	if !simdjson.SupportedCPU() {
		return nil, errUnsupportedCPU
	}
	pj, err := simdjson.Parse(data, s.reuse)
	if err != nil {
		return nil, err
	}
	s.reuse = pj
	return pj, nil
}
