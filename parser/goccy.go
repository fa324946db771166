package parser

import (
	gojson "github.com/goccy/go-json"
)

type Goccy struct {
	Target Target `yaml:"target"`
}

func (g *Goccy) Setup() error {
	return g.Target.validate()
}

func (g *Goccy) Parse(data []byte) (interface{}, error) {
	v := g.Target.New()
	return v, gojson.Unmarshal(data, v)
}
