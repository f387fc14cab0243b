package encode

type EncodeOption func(*EncState)

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodeWire selects compact output with no whitespace and no trailing
// newline.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}
