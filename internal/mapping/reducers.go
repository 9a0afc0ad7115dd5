package mapping

import (
	"slices"

	"kwmap/internal/record"
)

// Noop explains why a reducer left the state unchanged.
type Noop struct {
	Op     string
	Reason string
}

func noop(op, reason string) *Noop { return &Noop{Op: op, Reason: reason} }

// SelectProduct replaces the selected product unconditionally.
func (s State) SelectProduct(p record.Product) State {
	s.selected = &p
	return s
}

// ClearSelection drops the selected product. The mapping is kept.
func (s State) ClearSelection() State {
	s.selected = nil
	return s
}

// SelectKeywords replaces the keyword list of the selected product's entry,
// creating the entry if needed. The entry keeps the product it was created
// with. An empty list removes the entry.
func (s State) SelectKeywords(keywords []record.Keyword) (State, error) {
	next, _, err := s.selectKeywords(keywords)
	return next, err
}

func (s State) selectKeywords(keywords []record.Keyword) (State, *Noop, error) {
	if s.selected == nil {
		return s, nil, ErrNoProductSelected
	}
	key := s.selected.Key
	i := s.index(key)

	if len(keywords) == 0 {
		if i < 0 {
			return s, noop("select_keywords", "empty selection for unmapped product"), nil
		}
		s.entries = slices.Delete(slices.Clone(s.entries), i, i+1)
		return s, nil, nil
	}

	kws := slices.Clone(keywords)
	if i < 0 {
		s.entries = append(slices.Clip(s.entries), Entry{Key: key, Product: *s.selected, Keywords: kws})
		return s, nil, nil
	}
	entries := slices.Clone(s.entries)
	entries[i].Keywords = kws
	s.entries = entries
	return s, nil, nil
}

// RemoveAllKeywords deletes productKey's entry. Unknown keys are a no-op.
func (s State) RemoveAllKeywords(productKey string) State {
	next, _ := s.removeAllKeywords(productKey)
	return next
}

func (s State) removeAllKeywords(productKey string) (State, *Noop) {
	i := s.index(productKey)
	if i < 0 {
		return s, noop("remove_all_keywords", "no entry for product")
	}
	s.entries = slices.Delete(slices.Clone(s.entries), i, i+1)
	return s, nil
}

// RemoveKeyword drops one keyword from productKey's entry, deleting the
// entry when it becomes empty. Remaining keywords keep their order.
func (s State) RemoveKeyword(productKey, keywordKey string) State {
	next, _ := s.removeKeyword(productKey, keywordKey)
	return next
}

func (s State) removeKeyword(productKey, keywordKey string) (State, *Noop) {
	i := s.index(productKey)
	if i < 0 {
		return s, noop("remove_keyword", "no entry for product")
	}
	kept := slices.DeleteFunc(slices.Clone(s.entries[i].Keywords), func(k record.Keyword) bool {
		return k.Key == keywordKey
	})
	if len(kept) == len(s.entries[i].Keywords) {
		return s, noop("remove_keyword", "keyword not mapped")
	}
	if len(kept) == 0 {
		return s.removeAllKeywords(productKey)
	}
	entries := slices.Clone(s.entries)
	entries[i].Keywords = kept
	s.entries = entries
	return s, nil
}

// ReorderKeyword moves movedKey to targetKey's position within productKey's
// entry; the keywords in between shift by one.
func (s State) ReorderKeyword(productKey, movedKey, targetKey string) State {
	next, _ := s.reorderKeyword(productKey, movedKey, targetKey)
	return next
}

func (s State) reorderKeyword(productKey, movedKey, targetKey string) (State, *Noop) {
	i := s.index(productKey)
	if i < 0 {
		return s, noop("reorder_keyword", "no entry for product")
	}
	kws := s.entries[i].Keywords
	from, to := keywordIndex(kws, movedKey), keywordIndex(kws, targetKey)
	switch {
	case from < 0:
		return s, noop("reorder_keyword", "moved keyword not mapped")
	case to < 0:
		return s, noop("reorder_keyword", "target keyword not mapped")
	case from == to:
		return s, noop("reorder_keyword", "moved onto itself")
	}
	entries := slices.Clone(s.entries)
	entries[i].Keywords = Move(kws, from, to)
	s.entries = entries
	return s, nil
}

// Move returns a copy of items with the element at from relocated to index
// to. Out-of-range indexes return an unchanged copy.
func Move[E any](items []E, from, to int) []E {
	out := slices.Clone(items)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}
