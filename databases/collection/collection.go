// Package collection provides the singly linked, insertion ordered container
// that backs the in-memory issue, category and attachment stores.
package collection

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by GetAt when the index is outside [0, Count).
var ErrIndexOutOfRange = errors.New("index is out of range")

// OrderedCollection is an insertion ordered, duplicate permitting sequence with
// 0-based positional access. Every operation is a linear walk from the head.
//
// OrderedCollection is not safe for concurrent use; callers that share one
// across goroutines must guard it (see databases.Store).
type OrderedCollection[V comparable] struct {
	head  *node[V]
	count int
}

// New returns an empty collection.
func New[V comparable]() *OrderedCollection[V] {
	return &OrderedCollection[V]{}
}

// From builds a collection holding values in order.
func From[V comparable](values ...V) *OrderedCollection[V] {
	c := New[V]()
	for _, v := range values {
		c.Add(v)
	}
	return c
}

// Count returns the number of values held.
func (c *OrderedCollection[V]) Count() int {
	if c == nil {
		return 0
	}
	return c.count
}

// IsEmpty reports whether the collection holds no values.
func (c *OrderedCollection[V]) IsEmpty() bool {
	return c.Count() == 0
}

// Add appends value at the tail.
func (c *OrderedCollection[V]) Add(value V) {
	n := newNode(value)
	if c.head == nil {
		c.head = n
		c.count++
		return
	}

	current := c.head
	for current.next != nil {
		current = current.next
	}
	current.next = n
	c.count++
}

// GetAll returns a fresh slice of every value in insertion order. The slice is
// never nil and can be modified freely without touching the collection.
func (c *OrderedCollection[V]) GetAll() []V {
	result := make([]V, 0, c.Count())
	if c == nil {
		return result
	}
	for current := c.head; current != nil; current = current.next {
		result = append(result, current.value)
	}
	return result
}

// GetAt returns the value at position index.
func (c *OrderedCollection[V]) GetAt(index int) (V, error) {
	var zero V
	if index < 0 || index >= c.Count() {
		return zero, fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfRange, index, c.Count())
	}

	current := c.head
	for i := 0; i < index; i++ {
		current = current.next
	}
	return current.value, nil
}

// InsertAt places value so that it occupies position index. Valid positions
// are 0 through Count inclusive; Count appends. It returns false and leaves
// the collection untouched for any other index.
func (c *OrderedCollection[V]) InsertAt(index int, value V) bool {
	if index < 0 || index > c.count {
		return false
	}

	n := newNode(value)
	if index == 0 {
		n.next = c.head
		c.head = n
		c.count++
		return true
	}

	previous := c.head
	for i := 0; i < index-1; i++ {
		previous = previous.next
	}
	n.next = previous.next
	previous.next = n
	c.count++
	return true
}

// Find reports whether any value equals value.
func (c *OrderedCollection[V]) Find(value V) bool {
	_, ok := c.FindFunc(func(v V) bool { return v == value })
	return ok
}

// Contains is an alias for Find.
func (c *OrderedCollection[V]) Contains(value V) bool {
	return c.Find(value)
}

// Remove unlinks the first value equal to value and reports whether one was found.
func (c *OrderedCollection[V]) Remove(value V) bool {
	return c.RemoveFunc(func(v V) bool { return v == value })
}

// RemoveAt unlinks the value at position index. It returns false when index
// is outside [0, Count).
func (c *OrderedCollection[V]) RemoveAt(index int) bool {
	if index < 0 || index >= c.count {
		return false
	}

	if index == 0 {
		c.head = c.head.next
		c.count--
		return true
	}

	previous := c.head
	for i := 0; i < index-1; i++ {
		previous = previous.next
	}
	previous.next = previous.next.next
	c.count--
	return true
}

// Clear drops every value.
func (c *OrderedCollection[V]) Clear() {
	c.head = nil
	c.count = 0
}

// FindFunc returns the first value matching match.
func (c *OrderedCollection[V]) FindFunc(match func(V) bool) (V, bool) {
	if c != nil {
		for current := c.head; current != nil; current = current.next {
			if match(current.value) {
				return current.value, true
			}
		}
	}
	var zero V
	return zero, false
}

// RemoveFunc unlinks the first value matching match and reports whether one was found.
func (c *OrderedCollection[V]) RemoveFunc(match func(V) bool) bool {
	if c == nil || c.head == nil {
		return false
	}

	if match(c.head.value) {
		c.head = c.head.next
		c.count--
		return true
	}

	for current := c.head; current.next != nil; current = current.next {
		if match(current.next.value) {
			current.next = current.next.next
			c.count--
			return true
		}
	}
	return false
}

// Filter returns the values matching keep, in their original relative order.
// The first pass counts matches so the result is allocated at its exact size.
func (c *OrderedCollection[V]) Filter(keep func(V) bool) []V {
	matches := 0
	if c != nil {
		for current := c.head; current != nil; current = current.next {
			if keep(current.value) {
				matches++
			}
		}
	}

	result := make([]V, 0, matches)
	if matches == 0 {
		return result
	}
	for current := c.head; current != nil && len(result) < matches; current = current.next {
		if keep(current.value) {
			result = append(result, current.value)
		}
	}
	return result
}

// MarshalJSON encodes the collection as a JSON array of its values.
func (c *OrderedCollection[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.GetAll())
}

// UnmarshalJSON replaces the contents with the values of a JSON array.
func (c *OrderedCollection[V]) UnmarshalJSON(data []byte) error {
	var values []V
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	c.Clear()
	for _, v := range values {
		c.Add(v)
	}
	return nil
}
