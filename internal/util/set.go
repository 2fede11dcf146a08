package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a map[E comparable]bool with methods added so it can be used as a
// mathematical set of its keys.
type KeySet[E comparable] map[E]bool

func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// KeySetOf returns a KeySet containing every element of sl.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := NewKeySet[E]()

	for i := range sl {
		s.Add(sl[i])
	}

	return s
}

func (s KeySet[E]) Copy() KeySet[E] {
	newS := NewKeySet[E]()

	for k := range s {
		newS[k] = true
	}

	return newS
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Empty() bool {
	return s.Len() == 0
}

// AddAll adds every element of s2 to the set.
func (s KeySet[E]) AddAll(s2 KeySet[E]) {
	for k := range s2 {
		s.Add(k)
	}
}

// Intersection returns a new set that contains the elements that are in both
// s and o.
func (s KeySet[E]) Intersection(o KeySet[E]) KeySet[E] {
	newSet := NewKeySet[E]()

	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}

	return newSet
}

// DisjointWith returns whether the set is disjoint with (contains no elements
// of) o.
func (s KeySet[E]) DisjointWith(o KeySet[E]) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

// Equal returns whether two sets have the same elements. Anything other than
// a KeySet[E] or *KeySet[E] will not be considered equal.
func (s KeySet[E]) Equal(o any) bool {
	other, ok := o.(KeySet[E])
	if !ok {
		// also okay if its the pointer value, as long as its non-nil
		otherPtr, ok := o.(*KeySet[E])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		} else {
			other = *otherPtr
		}
	}

	if s.Len() != other.Len() {
		return false
	}

	for k := range s {
		if !other.Has(k) {
			return false
		}
	}

	return true
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on.
func (s KeySet[E]) Elements() []E {
	if s == nil {
		return nil
	}

	sl := make([]E, 0)

	for item := range s {
		sl = append(sl, item)
	}

	return sl
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// alphabetized by their default formatting.
func (s KeySet[E]) StringOrdered() string {
	convs := []string{}

	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}

	sort.Strings(convs)

	var sb strings.Builder

	sb.WriteRune('{')
	for i := range convs {
		sb.WriteString(convs[i])
		if i+1 < len(convs) {
			sb.WriteRune(',')
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// String shows the contents of the set. Items are not guaranteed to be in any
// particular order.
func (s KeySet[E]) String() string {
	var sb strings.Builder

	totalLen := s.Len()
	itemsWritten := 0

	sb.WriteRune('{')
	for k := range s {
		sb.WriteString(fmt.Sprintf("%v", k))
		itemsWritten++
		if itemsWritten < totalLen {
			sb.WriteRune(',')
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('}')
	return sb.String()
}
