package model

import "strings"

// Category is the closed set of booking classifications recognised by
// the temple office.  It exists purely for display and reporting; the
// availability state machine never branches on it.  Free-form labels
// that match none of the known ceremonies map to CategoryOther while
// keeping the original text as the record's reason.
type Category string

const (
	CategoryWedding   Category = "WEDDING"
	CategoryUpanayana Category = "UPANAYANA"
	CategoryReception Category = "RECEPTION"
	CategoryFestival  Category = "FESTIVAL"
	CategoryOther     Category = "OTHER"
)

// ParseCategory maps request text onto a Category.  Matching is
// case-insensitive on the canonical names; anything else is OTHER.
func ParseCategory(s string) Category {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WEDDING":
		return CategoryWedding
	case "UPANAYANA":
		return CategoryUpanayana
	case "RECEPTION":
		return CategoryReception
	case "FESTIVAL":
		return CategoryFestival
	default:
		return CategoryOther
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWedding, CategoryUpanayana, CategoryReception, CategoryFestival, CategoryOther:
		return true
	}
	return false
}
