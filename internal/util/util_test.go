package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KeySet_AddHasRemove(t *testing.T) {
	assert := assert.New(t)

	s := NewKeySet[int]()
	assert.True(s.Empty())

	s.Add(1)
	s.Add(2)
	s.Add(2)
	assert.Equal(2, s.Len())
	assert.True(s.Has(1))
	assert.False(s.Has(3))

	s.Remove(1)
	assert.False(s.Has(1))
	assert.Equal(1, s.Len())
}

func Test_KeySet_AddAll(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]int{1, 2})
	s.AddAll(KeySetOf([]int{2, 3}))

	assert.ElementsMatch([]int{1, 2, 3}, s.Elements())
}

func Test_KeySet_DisjointWith(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]string{"a", "b"})

	assert.True(s.DisjointWith(KeySetOf([]string{"c", "d"})))
	assert.False(s.DisjointWith(KeySetOf([]string{"b"})))
	assert.True(s.DisjointWith(NewKeySet[string]()))
}

func Test_KeySet_Intersection(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]int{1, 2, 3})
	inter := s.Intersection(KeySetOf([]int{2, 3, 4}))

	assert.ElementsMatch([]int{2, 3}, inter.Elements())
}

func Test_KeySet_Equal(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]int{1, 2})

	assert.True(s.Equal(KeySetOf([]int{2, 1})))
	assert.False(s.Equal(KeySetOf([]int{1})))
	assert.False(s.Equal("not a set"))
}

func Test_KeySet_Copy(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]int{1})
	c := s.Copy()
	c.Add(2)

	assert.False(s.Has(2))
	assert.True(c.Has(1))
}

func Test_KeySet_StringOrdered(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]string{"b", "a"})
	assert.Equal("{a, b}", s.StringOrdered())
}

func Test_Matrix2_SetGet(t *testing.T) {
	assert := assert.New(t)

	m := NewMatrix2[string, int, string]()
	assert.Nil(m.Get("x", 1))

	m.Set("x", 1, "hello")
	v := m.Get("x", 1)
	if assert.NotNil(v) {
		assert.Equal("hello", *v)
	}
	assert.Nil(m.Get("x", 2))
	assert.Nil(m.Get("y", 1))

	m.Set("x", 1, "replaced")
	assert.Equal("replaced", *m.Get("x", 1))
}

func Test_OrderedKeys(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"zebra": 1, "apple": 2, "mango": 3}
	assert.Equal([]string{"apple", "mango", "zebra"}, OrderedKeys(m))
	assert.Equal([]string{}, OrderedKeys(map[string]int{}))
}
