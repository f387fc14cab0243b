package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/objson/ir"

	"github.com/go-json-experiment/json/jsontext"
)

// Parse reads exactly one JSON value from d.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

// ParseReader reads exactly one JSON value from r. Anything but whitespace
// after the value is an error.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	dec := jsontext.NewDecoder(r, jsontext.AllowDuplicateNames(!o.rejectDuplicates))
	node, err := parseValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyJSON
		}
		return nil, err
	}
	_, err = dec.ReadToken()
	switch {
	case errors.Is(err, io.EOF):
		return node, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	default:
		return nil, ErrTrailing
	}
}

func parseValue(dec *jsontext.Decoder) (*ir.Node, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch tok.Kind() {
	case 'n':
		return ir.Null(), nil
	case 't':
		return ir.FromBool(true), nil
	case 'f':
		return ir.FromBool(false), nil
	case '"':
		return ir.FromString(tok.String()), nil
	case '0':
		node, err := ir.FromNumber(tok.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return node, nil
	case '[':
		return parseArray(dec)
	case '{':
		return parseObject(dec)
	default:
		return nil, fmt.Errorf("%w: unexpected token %s", ErrParse, tok.Kind())
	}
}

func parseArray(dec *jsontext.Decoder) (*ir.Node, error) {
	var vals []*ir.Node
	for dec.PeekKind() != ']' {
		v, err := parseValue(dec)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		vals = append(vals, v)
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ir.FromSlice(vals), nil
}

func parseObject(dec *jsontext.Decoder) (*ir.Node, error) {
	var (
		kvs   []ir.KeyVal
		index = map[string]int{}
	)
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, unexpectedEOF(err))
		}
		key := tok.String()
		v, err := parseValue(dec)
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if i, ok := index[key]; ok {
			kvs[i].Val = v
			continue
		}
		index[key] = len(kvs)
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: v})
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ir.FromKeyVals(kvs), nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return fmt.Errorf("%w: %w", ErrParse, io.ErrUnexpectedEOF)
	}
	return err
}
