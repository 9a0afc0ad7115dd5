// Package mapping holds the product to keyword mapping and the currently
// selected product. State is an immutable value; every reducer returns a
// new State and leaves the receiver untouched.
package mapping

import (
	"errors"
	"fmt"
	"strings"

	"kwmap/internal/record"
)

// ErrNoProductSelected is returned by SelectKeywords without a selected product.
var ErrNoProductSelected = errors.New("select a product first")

// Entry maps one product to its ordered keywords. An entry never has an
// empty keyword list.
type Entry struct {
	Key      string
	Product  record.Product
	Keywords []record.Keyword
}

// KeywordKeys returns the keys of e's keywords in order.
func (e Entry) KeywordKeys() []string {
	return record.Keys(e.Keywords)
}

// State is the mapping collection plus the selected product.
type State struct {
	selected *record.Product
	entries  []Entry
}

// New returns an empty state.
func New() State {
	return State{}
}

// Selected returns the selected product.
func (s State) Selected() (record.Product, bool) {
	if s.selected == nil {
		return record.Product{}, false
	}
	return *s.selected, true
}

// Entries returns a copy of the mapping in first-mapped order.
func (s State) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = Entry{Key: e.Key, Product: e.Product, Keywords: append([]record.Keyword(nil), e.Keywords...)}
	}
	return out
}

// Entry returns the entry for productKey.
func (s State) Entry(productKey string) (Entry, bool) {
	i := s.index(productKey)
	if i < 0 {
		return Entry{}, false
	}
	e := s.entries[i]
	e.Keywords = append([]record.Keyword(nil), e.Keywords...)
	return e, true
}

// Len returns the number of entries.
func (s State) Len() int {
	return len(s.entries)
}

// SelectedKeywords returns the keywords mapped to the selected product, or
// nil when nothing is selected or mapped.
func (s State) SelectedKeywords() []record.Keyword {
	if s.selected == nil {
		return nil
	}
	e, ok := s.Entry(s.selected.Key)
	if !ok {
		return nil
	}
	return e.Keywords
}

// CopyText joins the keyword texts of productKey's entry with single spaces.
func (s State) CopyText(productKey string) (string, bool) {
	i := s.index(productKey)
	if i < 0 {
		return "", false
	}
	return strings.Join(record.KeywordTexts(s.entries[i].Keywords), " "), true
}

// Check verifies the collection invariants: no empty entries, unique keys,
// and every key equal to its product's key.
func (s State) Check() error {
	seen := make(map[string]struct{}, len(s.entries))
	for i, e := range s.entries {
		if len(e.Keywords) == 0 {
			return fmt.Errorf("entry %d (%s): empty keyword list", i, e.Key)
		}
		if e.Key != e.Product.Key {
			return fmt.Errorf("entry %d: key %q does not match product key %q", i, e.Key, e.Product.Key)
		}
		if _, dup := seen[e.Key]; dup {
			return fmt.Errorf("entry %d: duplicate key %q", i, e.Key)
		}
		seen[e.Key] = struct{}{}
	}
	return nil
}

func (s State) index(productKey string) int {
	for i, e := range s.entries {
		if e.Key == productKey {
			return i
		}
	}
	return -1
}

func keywordIndex(keywords []record.Keyword, key string) int {
	for i, k := range keywords {
		if k.Key == key {
			return i
		}
	}
	return -1
}
