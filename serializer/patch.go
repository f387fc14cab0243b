package serializer

import (
	"bytes"
	"fmt"

	"github.com/signadot/objson/encode"
	"github.com/signadot/objson/ir"
	"github.com/signadot/objson/meta"
	"github.com/signadot/objson/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// PatchFormat selects how a patch document is interpreted.
type PatchFormat int

const (
	// JSONPatch is an RFC 6902 list of operations.
	JSONPatch PatchFormat = iota
	// MergePatch is an RFC 7386 merge patch.
	MergePatch
)

func (f PatchFormat) String() string {
	if f == MergePatch {
		return "merge"
	}
	return "json-patch"
}

// PatchNode applies patch to a copy of node.
func PatchNode(node *ir.Node, patch []byte, format PatchFormat) (*ir.Node, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	var (
		out []byte
		err error
	)
	switch format {
	case MergePatch:
		out, err = jsonpatch.MergePatch(buf.Bytes(), patch)
	default:
		var p jsonpatch.Patch
		p, err = jsonpatch.DecodePatch(patch)
		if err == nil {
			out, err = p.Apply(buf.Bytes())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", format, err)
	}
	return parse.Parse(out)
}

// Patch serializes v as type t, applies patch and deserializes the result
// into a new value of type t.
func (s *Serializer) Patch(t *meta.Type, v any, patch []byte, format PatchFormat, owner meta.Objecter) (meta.Value, error) {
	node, err := s.SerializeAs(t, v)
	if err != nil {
		return meta.Value{}, err
	}
	patched, err := PatchNode(node, patch, format)
	if err != nil {
		return meta.Value{}, wrapError(ErrDeserialization, err, "cannot patch %s", t.Name())
	}
	return s.Deserialize(patched, t, owner)
}
