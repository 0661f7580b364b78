// Package node provides a path-addressable view over a decoded configuration
// document.
//
// A document is a tree of Values. Each Value is one of null, bool, int,
// float, string, sequence or mapping; mappings keep their keys in document
// order. A Node wraps one mapping of that tree and reads and writes it
// through dotted paths such as "limits.max".
//
// # Views, not copies
//
// Nodes never copy. Node, Nodes, NodeList and AddNode all return nodes over
// the same mapping the parent document holds, so a write through a sub-node
// is visible from the root and is what gets encoded on save:
//
//	root := node.New(m, true)
//	limits := root.AddNode("limits")
//	limits.SetProperty("max", 10)
//	root.IntOr("limits.max", 0) // 10
//
// # Reading values
//
// Every accessor comes in two forms. The plain form returns (value, ok);
// ok is false both when nothing is stored and when the stored value cannot
// be converted. The *Or form takes a default:
//
//	port, ok := cfg.Int("server.port")
//	port = cfg.IntOr("server.port", 8080)
//
// Conversion rules:
//   - Int and Float accept any number; Int truncates toward zero.
//   - Bool accepts only booleans. The string "true" is not a boolean.
//   - String accepts any non-null value and returns its textual form.
//   - UUID accepts strings that parse as UUIDs.
//   - Vector, Vector2D and BlockVector2D read the x/y/z fields of a mapping
//     and fail as a whole if any field is missing or not a number.
//
// List accessors (StringList, IntList, NodeList, VectorList, ...) apply the
// same rules per element and silently drop elements that do not convert.
//
// # Default write-back
//
// When a node has write-defaults enabled, an *Or accessor that finds nothing
// at its path stores the default there, creating intermediate mappings as
// needed. A value that is present but of the wrong type is left alone and the
// default is returned without writing. A scalar or sequence sitting where an
// intermediate mapping is needed does not count as present: reading "a.b"
// with a default when "a" holds 5 replaces 5 with {b: default}. List
// accessors write back only a non-nil default.
//
// # Writing values
//
// SetProperty converts its argument with Prepare and stores it, replacing any
// non-mapping value that sits where an intermediate mapping is needed.
// RemoveProperty deletes a value and does nothing if its parent is missing.
//
// # Concurrency
//
// Nodes are not safe for concurrent use. All nodes derived from one root
// share state, so the owner of a document must serialize access to it.
package node
