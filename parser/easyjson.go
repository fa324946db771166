package parser

import (
	"github.com/mailru/easyjson/jlexer"
)

type EasyJSON struct{}

func (EasyJSON) Parse(data []byte) (interface{}, error) {
	l := jlexer.Lexer{Data: data}
	v := l.Interface()
	l.Consumed()
	return v, l.Error()
}
