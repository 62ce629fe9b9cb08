package npz

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"

	"github.com/arloliu/npyz/internal/collision"
	"github.com/arloliu/npyz/ndarray"
)

// PositionalPrefix is the name prefix given to positional arrays.
const PositionalPrefix = "arr_"

// PositionalName returns the archive name of the i-th positional array.
func PositionalName(i int) string {
	return PositionalPrefix + strconv.Itoa(i)
}

// Origin records whether an array name was synthesized from the array's
// position or supplied by the caller.
type Origin = collision.Origin

const (
	Positional = collision.Positional
	Keyword    = collision.Keyword
)

// ArraySet is an insertion-ordered set of uniquely named arrays.
//
// Replacing an array keeps the position of the name it replaces.
type ArraySet struct {
	tracker *collision.Tracker
	arrays  map[string]*ndarray.Array
}

// NewArraySet creates an empty ArraySet.
func NewArraySet() *ArraySet {
	return &ArraySet{
		tracker: collision.NewTracker(),
		arrays:  make(map[string]*ndarray.Array),
	}
}

// SetFromMap creates an ArraySet from a name to array mapping. Names are
// ordered lexicographically.
func SetFromMap(arrays map[string]*ndarray.Array) (*ArraySet, error) {
	s := NewArraySet()
	for _, name := range slices.Sorted(maps.Keys(arrays)) {
		if _, err := s.Set(name, arrays[name]); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Set binds name to a. It returns true when a previous array bound to name was
// replaced. Empty names are rejected with errs.ErrInvalidArrayName.
//
// A nil array is accepted here and reported when the set is written.
func (s *ArraySet) Set(name string, a *ndarray.Array) (bool, error) {
	return s.set(name, a, collision.Keyword)
}

func (s *ArraySet) set(name string, a *ndarray.Array, origin collision.Origin) (bool, error) {
	replaced, err := s.tracker.Track(name, origin)
	if err != nil {
		return false, err
	}
	s.arrays[name] = a

	return replaced, nil
}

// Get returns the array bound to name.
func (s *ArraySet) Get(name string) (*ndarray.Array, bool) {
	a, ok := s.arrays[name]
	return a, ok
}

// Origin reports how the array currently bound to name was supplied. A keyword
// array that replaced a positional one reports Keyword.
func (s *ArraySet) Origin(name string) (Origin, bool) {
	return s.tracker.Origin(name)
}

// Len returns the number of arrays in the set.
func (s *ArraySet) Len() int {
	return s.tracker.Count()
}

// Names returns the array names in insertion order.
func (s *ArraySet) Names() []string {
	return slices.Clone(s.tracker.Names())
}

// Overridden returns the names whose array was replaced, in replacement order.
func (s *ArraySet) Overridden() []string {
	return slices.Clone(s.tracker.Overridden())
}

// All iterates over the set in insertion order.
func (s *ArraySet) All() iter.Seq2[string, *ndarray.Array] {
	return func(yield func(string, *ndarray.Array) bool) {
		for _, name := range s.tracker.Names() {
			if !yield(name, s.arrays[name]) {
				return
			}
		}
	}
}

// Merge builds one ArraySet from positional and keyword arrays.
//
// Positional arrays are named arr_0, arr_1, ... in order. Keyword arrays are
// applied afterwards in lexicographic name order; a keyword array whose name
// equals a positional name replaces that array in place.
func Merge(positional []*ndarray.Array, named map[string]*ndarray.Array) (*ArraySet, error) {
	s := NewArraySet()
	for i, a := range positional {
		if _, err := s.set(PositionalName(i), a, collision.Positional); err != nil {
			return nil, err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(named)) {
		if _, err := s.set(name, named[name], collision.Keyword); err != nil {
			return nil, fmt.Errorf("keyword array: %w", err)
		}
	}

	return s, nil
}
