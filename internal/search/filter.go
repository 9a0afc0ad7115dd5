// Package search filters record collections by a free-text term.
package search

import (
	"regexp"
	"strings"

	"kwmap/internal/record"
)

// Matcher reports whether a field value matches a compiled term.
type Matcher func(value string) bool

// Compile turns term into a Matcher. The term is a regular expression; a
// term that does not compile is matched as a literal substring. Matching is
// case-sensitive.
func Compile(term string) Matcher {
	if re, err := regexp.Compile(term); err == nil {
		return re.MatchString
	}
	return func(value string) bool { return strings.Contains(value, term) }
}

// IsPattern reports whether term compiles as a regular expression.
func IsPattern(term string) bool {
	_, err := regexp.Compile(term)
	return err == nil
}

// Filter returns the items with at least one field matching term, in
// their original order. An empty term returns items itself, not a copy.
func Filter[T record.Record](items []T, term string) []T {
	if term == "" {
		return items
	}
	match := Compile(term)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, match) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether any field of item satisfies match.
func Matches(item record.Record, match Matcher) bool {
	for _, v := range item.Values() {
		if match(v) {
			return true
		}
	}
	return false
}
