package parser

import (
	"bytes"

	"github.com/bcicen/jstream"
)

// JStream drives the streaming decoder at depth 0, so the single emitted
// value is the whole document.
type JStream struct{}

func (JStream) Parse(data []byte) (interface{}, error) {
	d := jstream.NewDecoder(bytes.NewReader(data), 0)
	var v interface{}
	for mv := range d.Stream() {
		v = mv.Value
	}
	return v, d.Err()
}
