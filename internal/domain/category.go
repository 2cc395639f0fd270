package domain

import "fmt"

// Category is the class of a vocabulary file
type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryPublic    Category = "public"
	CategoryNote      Category = "note"
	CategoryFavorites Category = "favorites"
)

// Marker describes where the favorite star sits on a line
type Marker int

const (
	MarkerNone Marker = iota
	MarkerPrefix
	MarkerSuffix
)

// Policy bundles the marker encoding and sync behaviour of a category
type Policy struct {
	Marker Marker
	// LedgerDerived means favorite status comes from ledger membership only.
	LedgerDerived bool
	// Scanned files are visited when stale markers are cleared.
	Scanned bool
	// Mutable files accept add and edit through the store.
	Mutable bool
}

var policies = map[Category]Policy{
	CategoryPersonal:  {Marker: MarkerPrefix, Scanned: true, Mutable: true},
	CategoryNote:      {Marker: MarkerSuffix, Scanned: true, Mutable: true},
	CategoryPublic:    {Marker: MarkerNone, LedgerDerived: true, Mutable: true},
	CategoryFavorites: {Marker: MarkerNone, LedgerDerived: true},
}

// Policy returns the strategy for the category
func (c Category) Policy() Policy {
	return policies[c]
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := policies[c]
	return ok
}

// ParseCategory converts a name into a Category
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, name)
	}
	return c, nil
}

// ScanRoot is a directory whose files are scanned with the given category
type ScanRoot struct {
	Dir      string
	Category Category
}
