package parser

import (
	simplejson "github.com/bitly/go-simplejson"
)

type SimpleJSON struct{}

func (SimpleJSON) Parse(data []byte) (interface{}, error) {
	return simplejson.NewJson(data)
}
