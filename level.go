package trie

import (
	"iter"
	"slices"
)

// entry is one slot of a branch level. It is either a *leaf holding a stored
// value (only ever under the terminal marker) or a nested *level.
type entry interface {
	isEntry()
}

type leaf[V any] struct {
	value V
}

func (*leaf[V]) isEntry() {}

// level is a branch level: a mapping from the next key element to an entry.
// order keeps the insertion order of entries so enumeration is deterministic.
type level[K comparable, V any] struct {
	entries map[K]entry
	order   []K
	// frozen levels are finalized and never grow again.
	frozen  bool
}

func (*level[K, V]) isEntry() {}

func newLevel[K comparable, V any]() *level[K, V] {
	return &level[K, V]{entries: make(map[K]entry)}
}

func (l *level[K, V]) put(k K, e entry) {
	if _, ok := l.entries[k]; !ok {
		l.order = append(l.order, k)
	}
	l.entries[k] = e
}

func (l *level[K, V]) remove(k K) bool {
	if l.frozen {
		panic("logic error, write to a finalized level")
	}
	if _, ok := l.entries[k]; !ok {
		return false
	}
	delete(l.entries, k)
	if i := slices.Index(l.order, k); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
	return true
}

// child returns the nested level stored at k. It never creates one.
func (l *level[K, V]) child(k K) (*level[K, V], bool) {
	sub, ok := l.entries[k].(*level[K, V])
	return sub, ok
}

// childOrCreate returns the nested level at k, creating an empty one when
// it is missing. Only the write walk calls it.
func (l *level[K, V]) childOrCreate(k K) *level[K, V] {
	if l.frozen {
		panic("logic error, write to a finalized level")
	}
	if sub, ok := l.child(k); ok {
		return sub
	}
	sub := newLevel[K, V]()
	l.put(k, sub)
	return sub
}

func (l *level[K, V]) value(terminal K) (V, bool) {
	lf, ok := l.entries[terminal].(*leaf[V])
	if !ok {
		var zero V
		return zero, false
	}
	return lf.value, true
}

func (l *level[K, V]) store(terminal K, value V) {
	if l.frozen {
		panic("logic error, write to a finalized level")
	}
	l.put(terminal, &leaf[V]{value: value})
}

// walk is the read walk: it follows key element by element and reports
// false as soon as an element is missing.
func (l *level[K, V]) walk(key []K) (*level[K, V], bool) {
	curr := l
	for _, k := range key {
		next, ok := curr.child(k)
		if !ok {
			return nil, false
		}
		curr = next
	}
	return curr, true
}

// walkOrCreate is the write walk: missing levels along key are created.
func (l *level[K, V]) walkOrCreate(key []K) *level[K, V] {
	curr := l
	for _, k := range key {
		curr = curr.childOrCreate(k)
	}
	return curr
}

// freeze finalizes l and every level below it.
func (l *level[K, V]) freeze() {
	l.frozen = true
	for _, e := range l.entries {
		if sub, ok := e.(*level[K, V]); ok {
			sub.freeze()
		}
	}
}

// branches yields the non-terminal entries of l in insertion order.
func (l *level[K, V]) branches(terminal K) iter.Seq2[K, *level[K, V]] {
	return func(yield func(K, *level[K, V]) bool) {
		for _, k := range l.order {
			if k == terminal {
				continue
			}
			sub, ok := l.child(k)
			if !ok {
				continue
			}
			if !yield(k, sub) {
				return
			}
		}
	}
}

// prefixesRec yields prefix extended by every branch below l, depth first.
// If yield returns false the traversal stops and false is propagated.
func (l *level[K, V]) prefixesRec(terminal K, prefix []K, yield func([]K) bool) bool {
	for k, sub := range l.branches(terminal) {
		path := make([]K, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = k

		if !yield(slices.Clone(path)) {
			return false
		}
		if !sub.prefixesRec(terminal, path, yield) {
			return false
		}
	}
	return true
}

// build folds items into a fresh branch structure. split turns a caller key
// into its elements, or reports why the key is unusable.
func build[S any, K comparable, V any](terminal K, items iter.Seq2[S, V], split func(S) ([]K, error)) (*level[K, V], error) {
	root := newLevel[K, V]()
	for key, value := range items {
		parts, err := split(key)
		if err != nil {
			return nil, keyError("build", key, err)
		}
		root.walkOrCreate(parts).store(terminal, value)
	}
	return root, nil
}

// validKey reports ErrInvalidKey for empty keys and for keys that contain
// the terminal marker.
func validKey[K comparable](terminal K, key []K) error {
	if len(key) == 0 || slices.Contains(key, terminal) {
		return ErrInvalidKey
	}
	return nil
}
