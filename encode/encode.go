package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/objson/ir"

	"github.com/go-json-experiment/json/jsontext"
)

type EncState struct {
	depth, indent int
	wire          bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w as JSON text.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	if es.wire {
		return nil
	}
	return writeString(w, "\n")
}

// Helper functions for writing
func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	return writeString(w, "\n"+indentString)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeString(w, applyColor(es, node.Type, ValueColor, "null"))
	case ir.BoolType:
		return writeString(w, applyColor(es, node.Type, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NumberType:
		s, err := formatNumber(node)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, node.Type, ValueColor, s))
	case ir.StringType:
		q, err := quote(node.String)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, node.Type, ValueColor, q))
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.ObjectType:
		return encodeObject(node, w, es)
	default:
		return fmt.Errorf("%w: unknown node type %s", ErrEncoding, node.Type)
	}
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: object at %s has %d keys and %d values", ErrEncoding, node.Path(), len(node.Fields), len(node.Values))
	}
	if err := writeString(w, applyColor(es, node.Type, PunctColor, "{")); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeString(w, applyColor(es, node.Type, PunctColor, "}"))
	}
	es.depth++
	for i, field := range node.Fields {
		if i != 0 {
			if err := writeString(w, applyColor(es, node.Type, PunctColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		q, err := quote(field.String)
		if err != nil {
			return err
		}
		sep := ":"
		if !es.wire {
			sep = ": "
		}
		if err := writeString(w, applyColor(es, node.Type, KeyColor, q)+applyColor(es, node.Type, PunctColor, sep)); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, node.Type, PunctColor, "}"))
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, applyColor(es, node.Type, PunctColor, "[")); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeString(w, applyColor(es, node.Type, PunctColor, "]"))
	}
	es.depth++
	for i, v := range node.Values {
		if i != 0 {
			if err := writeString(w, applyColor(es, node.Type, PunctColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, node.Type, PunctColor, "]"))
}

func quote(s string) (string, error) {
	d, err := jsontext.AppendQuote(nil, s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return string(d), nil
}

func formatNumber(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		return formatFloat(*node.Float64)
	case node.Number != "":
		if _, err := ir.FromNumber(node.Number); err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: empty number at %s", ErrEncoding, node.Path())
}

// formatFloat uses the shortest representation, switching to exponent
// notation for very large and very small magnitudes.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: unsupported value %v", ErrEncoding, f)
	}
	abs := math.Abs(f)
	fmat := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmat = 'e'
	}
	b := strconv.AppendFloat(nil, f, fmat, -1, 64)
	if fmat == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b), nil
}
