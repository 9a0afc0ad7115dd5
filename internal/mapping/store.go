package mapping

import (
	"go.uber.org/zap"

	"kwmap/internal/logging"
	"kwmap/internal/record"
)

// Store owns the current State for the UI event loop. Silent no-ops are
// still silent to callers but are logged at debug level. Store is not safe
// for concurrent use.
type Store struct {
	state State
	log   *logging.Logger
}

// NewStore creates a store with an empty state. A nil logger disables
// no-op logging.
func NewStore(log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop(logging.CategoryMapping)
	}
	return &Store{log: log}
}

// State returns the current state value.
func (st *Store) State() State {
	return st.state
}

// SelectProduct selects p and returns the keywords already mapped to it.
func (st *Store) SelectProduct(p record.Product) []record.Keyword {
	st.state = st.state.SelectProduct(p)
	kws := st.state.SelectedKeywords()
	st.log.Debug("product selected", zap.String("product", p.Key), zap.Int("mapped", len(kws)))
	return kws
}

// ClearSelection drops the selected product.
func (st *Store) ClearSelection() {
	st.state = st.state.ClearSelection()
}

// SelectKeywords replaces the selected product's keywords.
func (st *Store) SelectKeywords(keywords []record.Keyword) error {
	next, n, err := st.state.selectKeywords(keywords)
	if err != nil {
		st.log.Warn("keyword selection rejected", zap.Error(err), zap.Int("keywords", len(keywords)))
		return err
	}
	st.apply(next, n, zap.Strings("keywords", record.Keys(keywords)))
	return nil
}

// RemoveAllKeywords deletes productKey's entry.
func (st *Store) RemoveAllKeywords(productKey string) {
	next, n := st.state.removeAllKeywords(productKey)
	st.apply(next, n, zap.String("product", productKey))
}

// RemoveKeyword drops one keyword from productKey's entry.
func (st *Store) RemoveKeyword(productKey, keywordKey string) {
	next, n := st.state.removeKeyword(productKey, keywordKey)
	st.apply(next, n, zap.String("product", productKey), zap.String("keyword", keywordKey))
}

// ReorderKeyword moves movedKey to targetKey's position.
func (st *Store) ReorderKeyword(productKey, movedKey, targetKey string) {
	next, n := st.state.reorderKeyword(productKey, movedKey, targetKey)
	st.apply(next, n,
		zap.String("product", productKey),
		zap.String("moved", movedKey),
		zap.String("target", targetKey))
}

func (st *Store) apply(next State, n *Noop, fields ...zap.Field) {
	if n != nil {
		st.log.Debug("no-op", append(fields, zap.String("op", n.Op), zap.String("reason", n.Reason))...)
		return
	}
	st.state = next
	if st.log.Enabled() {
		if err := next.Check(); err != nil {
			st.log.Error("mapping invariant violated", zap.Error(err))
		}
	}
}
