package search

import (
	"sync"
	"time"

	"kwmap/internal/debounce"
	"kwmap/internal/record"
)

// Result is one debounced filter pass.
type Result[T record.Record] struct {
	Seq   uint64 // increases with every pass
	Gen   uint64 // collection generation the pass filtered
	Term  string
	Items []T
}

// Live recomputes Filter a fixed window after the last term or data change.
// Only the newest result is kept: an unread result is replaced by a newer
// one, never the other way round.
type Live[T record.Record] struct {
	mu     sync.Mutex
	items  []T
	term   string
	seq    uint64
	gen    uint64
	closed bool

	debouncer *debounce.Debouncer
	out       chan Result[T]
}

// NewLive creates a live query with the given debounce window.
func NewLive[T record.Record](window time.Duration) *Live[T] {
	return &Live[T]{
		debouncer: debounce.New(window),
		out:       make(chan Result[T], 1),
	}
}

// Results delivers filter passes. The channel is closed by Close.
func (l *Live[T]) Results() <-chan Result[T] {
	return l.out
}

// Term returns the current term.
func (l *Live[T]) Term() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.term
}

// SetTerm replaces the term and reschedules the pass.
func (l *Live[T]) SetTerm(term string) {
	l.mu.Lock()
	l.term = term
	l.mu.Unlock()
	l.debouncer.Debounce(l.run)
}

// Gen returns the generation of the current collection. SetItems advances
// it, so results filtered from an earlier collection can be told apart.
func (l *Live[T]) Gen() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// SetItems replaces the searched collection and reschedules the pass.
func (l *Live[T]) SetItems(items []T) {
	l.mu.Lock()
	l.items = items
	l.gen++
	l.mu.Unlock()
	l.debouncer.Debounce(l.run)
}

// Refresh runs a pass now, dropping any pending one.
func (l *Live[T]) Refresh() {
	l.debouncer.Immediate(l.run)
}

// Close stops pending passes and closes Results.
func (l *Live[T]) Close() {
	l.debouncer.Cancel()

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		close(l.out)
	}
}

func (l *Live[T]) run() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}

	l.seq++
	res := Result[T]{Seq: l.seq, Gen: l.gen, Term: l.term, Items: Filter(l.items, l.term)}

	select {
	case <-l.out:
	default:
	}
	l.out <- res
}
