package collision

import (
	"fmt"

	"github.com/arloliu/npyz/errs"
)

// Origin records how an array name was supplied.
type Origin uint8

const (
	Positional Origin = iota // Positional names are synthesized as arr_<i>.
	Keyword                  // Keyword names are supplied by the caller.
)

func (o Origin) String() string {
	if o == Keyword {
		return "keyword"
	}

	return "positional"
}

// Tracker tracks array names while positional and keyword arrays are merged
// into one archive set. It keeps first-insertion order and records every name
// whose array was replaced by a later one.
type Tracker struct {
	origins    map[string]Origin
	names      []string // first-insertion order
	overridden []string
}

// NewTracker creates a new name tracker.
func NewTracker() *Tracker {
	return &Tracker{
		origins: make(map[string]Origin),
	}
}

// Track records name with its origin. It returns true when name was already
// tracked, meaning the new array replaces the previous one.
func (t *Tracker) Track(name string, origin Origin) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: empty %s name", errs.ErrInvalidArrayName, origin)
	}

	if _, exists := t.origins[name]; exists {
		t.origins[name] = origin
		t.overridden = append(t.overridden, name)

		return true, nil
	}

	t.origins[name] = origin
	t.names = append(t.names, name)

	return false, nil
}

// Origin returns the origin of the array currently bound to name.
func (t *Tracker) Origin(name string) (Origin, bool) {
	o, ok := t.origins[name]
	return o, ok
}

// Overridden returns the replaced names in the order the replacements happened.
func (t *Tracker) Overridden() []string {
	return t.overridden
}

// Names returns the tracked names in first-insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of distinct tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}
