package parse

type parseOpts struct {
	rejectDuplicates bool
}

type ParseOption func(*parseOpts)

// RejectDuplicateNames makes duplicate object keys a parse error. By
// default the last occurrence of a key wins.
func RejectDuplicateNames(v bool) ParseOption {
	return func(o *parseOpts) { o.rejectDuplicates = v }
}
