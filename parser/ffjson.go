package parser

import (
	"github.com/pquerna/ffjson/ffjson"
)

type FFJSON struct {
	Target Target `yaml:"target"`
}

func (f *FFJSON) Setup() error {
	return f.Target.validate()
}

func (f *FFJSON) Parse(data []byte) (interface{}, error) {
	v := f.Target.New()
	return v, ffjson.Unmarshal(data, v)
}
