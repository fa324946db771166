package parser

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

type JSONIter struct {
	// Config is one of "std", "default" or "fastest".
	Config string `yaml:"config"`
	Target Target `yaml:"target"`

	api jsoniter.API
}

func (j *JSONIter) Setup() error {
	switch j.Config {
	case "", "std":
		j.api = jsoniter.ConfigCompatibleWithStandardLibrary
	case "default":
		j.api = jsoniter.ConfigDefault
	case "fastest":
		j.api = jsoniter.ConfigFastest
	default:
		return fmt.Errorf("unknown jsoniter config: %q", j.Config)
	}
	return j.Target.validate()
}

func (j *JSONIter) Parse(data []byte) (interface{}, error) {
	v := j.Target.New()
	return v, j.api.Unmarshal(data, v)
}
