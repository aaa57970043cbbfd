// Package filter applies opt-in search and field predicates to in-memory
// record lists. An unset predicate always passes; a record is kept only
// when every active predicate holds, and input order is preserved.
package filter

import "strings"

// Predicate reports whether a record passes one filter. A nil Predicate is
// an unset filter.
type Predicate[T any] func(T) bool

// Field extracts a searchable string from a record.
type Field[T any] func(T) string

type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Shown int `json:"shown"`
}

// Apply returns the records for which all predicates hold.
func Apply[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matches(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

// Run is Apply plus the counts shown next to a filtered table.
func Run[T any](records []T, preds ...Predicate[T]) Result[T] {
	items := Apply(records, preds...)
	return Result[T]{Items: items, Total: len(records), Shown: len(items)}
}

func matches[T any](r T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}

// Search passes records where any of fields contains term, ignoring case.
func Search[T any](term string, fields ...Field[T]) Predicate[T] {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	return func(r T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(r)), needle) {
				return true
			}
		}
		return false
	}
}

// Equal passes records whose field equals want, ignoring case.
func Equal[T any](want string, field Field[T]) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(r T) bool {
		return strings.EqualFold(field(r), want)
	}
}

// Contains passes records whose field contains want, ignoring case.
func Contains[T any](want string, field Field[T]) Predicate[T] {
	if want == "" {
		return nil
	}
	needle := strings.ToLower(want)
	return func(r T) bool {
		return strings.Contains(strings.ToLower(field(r)), needle)
	}
}
