// Package document converts between YAML text and the value tree used by
// package node.
//
// Decode turns a YAML document into a root *node.Mapping, keeping key order,
// resolving aliases and expanding "<<" merge keys. Scalars map onto the node
// value union by their resolved tag: null, bool, int and float become the
// matching kinds and everything else (strings, timestamps, binary) becomes a
// string. Malformed input and a top-level value that is not a mapping are
// reported as *FormatError, which matches ErrDocumentFormat:
//
//	root, err := document.Decode(data)
//	if errors.Is(err, document.ErrDocumentFormat) {
//		// tell the user where the file is broken
//	}
//
// Encode renders a mapping back to text in one of two layouts:
//
//	Extended   block style throughout
//	Compact    flow style for collections holding only scalars
//
// Floats are always written with a decimal point so a round trip never turns
// 5.0 into the integer 5.
package document
