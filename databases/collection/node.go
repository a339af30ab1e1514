package collection

// node is a single link of an OrderedCollection. Each node is owned by its
// predecessor, or by the collection head for the first one.
type node[V comparable] struct {
	value V
	next  *node[V]
}

func newNode[V comparable](value V) *node[V] {
	return &node[V]{value: value}
}
