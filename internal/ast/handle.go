// Package ast defines the node hierarchy the parser builds: compilation
// units, modules, items, types, expressions, statements, and paths. Every
// node carries a position.Span; nothing here is mutated once the parser
// returns it.
package ast

// Handle is the shared-ownership wrapper every top-level ModuleDefItem is
// returned in. The parser is the sole producer; downstream passes (name
// resolution, trait-impl tables, method-resolution caches) keep their own
// copies of the same Handle rather than cloning the node, so a struct
// registered in one table and a method registered in another still point
// at identical data. Nodes are immutable after parse, so a plain pointer
// with Go's garbage collector standing in for reference counting is
// sufficient — there are no cycles to break and no writers to guard against.
type Handle[T any] struct {
	v T
}

// NewHandle wraps v for shared, read-only access. T is expected to be
// either a pointer type or an interface over one, so copying the Handle
// never copies the underlying node.
func NewHandle[T any](v T) Handle[T] {
	return Handle[T]{v: v}
}

// Get returns the underlying node. Callers must not mutate it.
func (h Handle[T]) Get() T {
	return h.v
}
