// Package parser holds the roster of JSON libraries under test. Each library
// is wrapped in a Parser that parses a complete document and returns the
// decoded value, which the caller is free to discard.
package parser

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

type Parser interface {
	Parse(data []byte) (interface{}, error)
}

// setuper is implemented by parsers that need to check their args or
// allocate reusable state once, before the first Parse.
type setuper interface {
	Setup() error
}

var registry = map[string]func() Parser{
	"std":        func() Parser { return &Std{} },
	"sonic":      func() Parser { return &Sonic{} },
	"jsoniter":   func() Parser { return &JSONIter{} },
	"goccy":      func() Parser { return &Goccy{} },
	"gjson":      func() Parser { return &GJSON{} },
	"jsonparser": func() Parser { return &JSONParser{} },
	"simdjson":   func() Parser { return &SIMDJSON{} },
	"gabs":       func() Parser { return &Gabs{} },
	"simplejson": func() Parser { return &SimpleJSON{} },
	"jason":      func() Parser { return &Jason{} },
	"ffjson":     func() Parser { return &FFJSON{} },
	"jstream":    func() Parser { return &JStream{} },
	"ugorji":     func() Parser { return &Ugorji{} },
	"easyjson":   func() Parser { return &EasyJSON{} },
}

// New returns the parser registered under name, configured from the yaml
// encoded args. Keys the parser doesn't know are an error.
func New(name string, args []byte) (Parser, error) {
	newParser, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown parser: %q", name)
	}
	p := newParser()
	if len(bytes.TrimSpace(args)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(args))
		dec.KnownFields(true)
		if err := dec.Decode(p); err != nil {
			return nil, fmt.Errorf("parser %s: bad args: %w", name, err)
		}
	}
	if s, ok := p.(setuper); ok {
		if err := s.Setup(); err != nil {
			return nil, fmt.Errorf("parser %s: %w", name, err)
		}
	}
	return p, nil
}

// Names returns the names of all registered parsers in lexicographic order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
