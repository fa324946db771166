package parser

import (
	"github.com/buger/jsonparser"
)

// JSONParser walks every value of the document. jsonparser is a lookup
// library, so a full walk is the closest thing it has to a parse. The result
// is the number of values visited.
type JSONParser struct{}

func (JSONParser) Parse(data []byte) (interface{}, error) {
	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, err
	}
	var n int
	err = walk(value, typ, &n)
	return n, err
}

func walk(data []byte, typ jsonparser.ValueType, n *int) error {
	*n++
	switch typ {
	case jsonparser.Object:
		return jsonparser.ObjectEach(data, func(_, value []byte, typ jsonparser.ValueType, _ int) error {
			return walk(value, typ, n)
		})
	case jsonparser.Array:
		var walkErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			} else if err != nil {
				walkErr = err
				return
			}
			walkErr = walk(value, typ, n)
		})
		if err != nil {
			return err
		}
		return walkErr
	}
	return nil
}
