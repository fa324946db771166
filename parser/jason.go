package parser

import (
	"github.com/antonholmquist/jason"
)

type Jason struct{}

func (Jason) Parse(data []byte) (interface{}, error) {
	return jason.NewValueFromBytes(data)
}
