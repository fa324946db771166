package parser

import (
	"bytes"
	"encoding/json"
)

// Std is the encoding/json baseline.
type Std struct {
	UseNumber bool   `yaml:"use_number"`
	Target    Target `yaml:"target"`
}

func (s *Std) Setup() error {
	return s.Target.validate()
}

func (s *Std) Parse(data []byte) (interface{}, error) {
	v := s.Target.New()
	if !s.UseNumber {
		return v, json.Unmarshal(data, v)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return v, dec.Decode(v)
}
