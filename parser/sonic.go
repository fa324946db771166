package parser

import (
	"fmt"

	"github.com/bytedance/sonic"
)

type Sonic struct {
	// Config is one of "std", "default" or "fastest".
	Config string `yaml:"config"`
	Target Target `yaml:"target"`

	api sonic.API
}

func (s *Sonic) Setup() error {
	switch s.Config {
	case "std":
		s.api = sonic.ConfigStd
	case "", "default":
		s.api = sonic.ConfigDefault
	case "fastest":
		s.api = sonic.ConfigFastest
	default:
		return fmt.Errorf("unknown sonic config: %q", s.Config)
	}
	return s.Target.validate()
}

func (s *Sonic) Parse(data []byte) (interface{}, error) {
	v := s.Target.New()
	return v, s.api.Unmarshal(data, v)
}
