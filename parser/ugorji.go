package parser

import (
	"github.com/ugorji/go/codec"
)

type Ugorji struct {
	Target Target `yaml:"target"`

	handle *codec.JsonHandle
}

func (u *Ugorji) Setup() error {
	u.handle = &codec.JsonHandle{}
	return u.Target.validate()
}

func (u *Ugorji) Parse(data []byte) (interface{}, error) {
	v := u.Target.New()
	return v, codec.NewDecoderBytes(data, u.handle).Decode(v)
}
