package parser

import (
	"github.com/Jeffail/gabs/v2"
)

type Gabs struct{}

func (Gabs) Parse(data []byte) (interface{}, error) {
	return gabs.ParseJSON(data)
}
