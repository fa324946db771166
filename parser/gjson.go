package parser

import (
	"errors"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid json")

// GJSON validates the document and then materializes it with Value, since
// gjson itself never reports syntax errors.
type GJSON struct{}

func (GJSON) Parse(data []byte) (interface{}, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	return gjson.ParseBytes(data).Value(), nil
}
