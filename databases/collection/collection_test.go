package collection_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/municipal-services-api/databases/collection"
)

func TestOrderedCollection_Add(t *testing.T) {
	c := collection.New[string]()
	assert.True(t, c.IsEmpty())

	c.Add("a")
	c.Add("b")
	c.Add("a")

	assert.Equal(t, 3, c.Count())
	assert.False(t, c.IsEmpty())
	assert.Equal(t, []string{"a", "b", "a"}, c.GetAll())
}

func TestOrderedCollection_GetAll(t *testing.T) {
	c := collection.New[int]()
	all := c.GetAll()
	assert.NotNil(t, all)
	assert.Len(t, all, 0)

	c = collection.From(1, 2, 3)
	all = c.GetAll()
	all[0] = 99
	assert.Equal(t, []int{1, 2, 3}, c.GetAll())
}

func TestOrderedCollection_GetAt(t *testing.T) {
	c := collection.From("a", "b", "c")

	v, err := c.GetAt(1)
	assert.NoError(t, err)
	assert.Equal(t, "b", v)

	v, err = c.GetAt(2)
	assert.NoError(t, err)
	assert.Equal(t, "c", v)

	for _, index := range []int{-1, 3, 10} {
		_, err = c.GetAt(index)
		assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
	}

	_, err = collection.New[string]().GetAt(0)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
}

func TestOrderedCollection_InsertAt(t *testing.T) {
	c := collection.From("b", "d")

	assert.True(t, c.InsertAt(0, "a"))
	assert.True(t, c.InsertAt(2, "c"))
	assert.True(t, c.InsertAt(4, "e"))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, c.GetAll())

	assert.False(t, c.InsertAt(-1, "x"))
	assert.False(t, c.InsertAt(6, "x"))
	assert.Equal(t, 5, c.Count())

	empty := collection.New[string]()
	assert.True(t, empty.InsertAt(0, "only"))
	assert.Equal(t, []string{"only"}, empty.GetAll())
}

func TestOrderedCollection_FindAndContains(t *testing.T) {
	c := collection.From(1, 2, 3)
	assert.True(t, c.Find(2))
	assert.True(t, c.Contains(3))
	assert.False(t, c.Find(4))
	assert.False(t, collection.New[int]().Contains(1))
}

func TestOrderedCollection_Remove(t *testing.T) {
	c := collection.From("a", "b", "a", "c")

	assert.True(t, c.Remove("a"))
	assert.Equal(t, []string{"b", "a", "c"}, c.GetAll())

	assert.True(t, c.Remove("c"))
	assert.Equal(t, []string{"b", "a"}, c.GetAll())

	assert.False(t, c.Remove("z"))
	assert.Equal(t, 2, c.Count())

	assert.False(t, collection.New[string]().Remove("a"))
}

func TestOrderedCollection_RemoveAt(t *testing.T) {
	c := collection.From(10, 20, 30, 40)

	assert.True(t, c.RemoveAt(0))
	assert.Equal(t, []int{20, 30, 40}, c.GetAll())

	assert.True(t, c.RemoveAt(1))
	assert.Equal(t, []int{20, 40}, c.GetAll())

	assert.True(t, c.RemoveAt(1))
	assert.Equal(t, []int{20}, c.GetAll())

	assert.False(t, c.RemoveAt(1))
	assert.False(t, c.RemoveAt(-1))
	assert.Equal(t, 1, c.Count())
}

func TestOrderedCollection_Clear(t *testing.T) {
	c := collection.From(1, 2, 3)
	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.GetAll())

	c.Add(4)
	assert.Equal(t, []int{4}, c.GetAll())
}

func TestOrderedCollection_FindFuncAndRemoveFunc(t *testing.T) {
	c := collection.From(1, 2, 3, 4)

	v, ok := c.FindFunc(func(v int) bool { return v%2 == 0 })
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = c.FindFunc(func(v int) bool { return v > 10 })
	assert.False(t, ok)

	assert.True(t, c.RemoveFunc(func(v int) bool { return v > 2 }))
	assert.Equal(t, []int{1, 2, 4}, c.GetAll())
}

func TestOrderedCollection_Filter(t *testing.T) {
	c := collection.From(5, 1, 4, 2, 3)

	assert.Equal(t, []int{4, 2}, c.Filter(func(v int) bool { return v%2 == 0 }))

	none := c.Filter(func(v int) bool { return v > 10 })
	assert.NotNil(t, none)
	assert.Len(t, none, 0)
}

func TestOrderedCollection_NilReceiver(t *testing.T) {
	var c *collection.OrderedCollection[int]
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.GetAll())
	assert.False(t, c.Contains(1))
	_, err := c.GetAt(0)
	assert.ErrorIs(t, err, collection.ErrIndexOutOfRange)
}

func TestOrderedCollection_JSON(t *testing.T) {
	c := collection.From("x", "y")
	b, err := json.Marshal(c)
	assert.NoError(t, err)
	assert.JSONEq(t, `["x","y"]`, string(b))

	b, err = json.Marshal(collection.New[string]())
	assert.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	decoded := collection.From("old")
	err = json.Unmarshal([]byte(`["a","b","c"]`), decoded)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, decoded.GetAll())

	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), decoded))
}
