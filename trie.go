package trie

import (
	"iter"
	"reflect"
	"slices"
)

// Item is a key and the value to store under it.
type Item[K comparable, V any] struct {
	Key   []K
	Value V
}

// Trie is an immutable prefix tree mapping sequences of K to values of V.
// A Trie returned by Subtrie or Items shares storage with its parent.
type Trie[K comparable, V any] struct {
	terminal K
	root     *level[K, V]
}

// FromItems builds a Trie from key/value pairs. Later duplicates overwrite
// earlier ones. An empty key, or a key containing terminal, fails the whole
// construction with ErrInvalidKey.
//
// If terminal is 0, the pair ([1 2 3], "foo") is stored as {1: {2: {3: {0: "foo"}}}}.
func FromItems[K comparable, V any](terminal K, items iter.Seq2[[]K, V]) (*Trie[K, V], error) {
	root, err := build(terminal, items, func(key []K) ([]K, error) {
		return key, validKey(terminal, key)
	})
	if err != nil {
		return nil, err
	}
	root.freeze()
	return &Trie[K, V]{terminal: terminal, root: root}, nil
}

// FromSlice is FromItems for a slice of items.
func FromSlice[K comparable, V any](terminal K, items []Item[K, V]) (*Trie[K, V], error) {
	return FromItems(terminal, itemSeq(items))
}

func itemSeq[K comparable, V any](items []Item[K, V]) iter.Seq2[[]K, V] {
	return func(yield func([]K, V) bool) {
		for _, it := range items {
			if !yield(it.Key, it.Value) {
				return
			}
		}
	}
}

// Terminal returns the terminal marker of t.
func (t *Trie[K, V]) Terminal() K {
	return t.terminal
}

// Get returns the value stored at key, or def when the whole key is not
// present or holds no value.
func (t *Trie[K, V]) Get(key []K, def V) V {
	if validKey(t.terminal, key) != nil {
		return def
	}
	v, ok := t.find(key)
	if !ok {
		return def
	}
	return v
}

// Lookup returns the value stored at key. The error is a *KeyError carrying
// key and wrapping ErrNotFound or ErrInvalidKey.
func (t *Trie[K, V]) Lookup(key []K) (V, error) {
	return t.lookup(key, key)
}

// Contains reports whether key holds a value that is neither zero nor empty.
// A key mapped to 0, "", false, nil or an empty slice or map is reported as
// absent, including when V is an interface type holding such a value; use
// Has for plain membership.
func (t *Trie[K, V]) Contains(key []K) bool {
	var zero V
	return !falsy(t.Get(key, zero))
}

// falsy unwraps interface values, so any(0) and any([]int{}) count as empty.
func falsy(v any) bool {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Array:
		return rv.Len() == 0
	}
	return rv.IsZero()
}

// Has reports whether a value is stored at key.
func (t *Trie[K, V]) Has(key []K) bool {
	if validKey(t.terminal, key) != nil {
		return false
	}
	_, ok := t.find(key)
	return ok
}

// Subtrie returns a view of the branch level reached by key. No value needs
// to be stored at key itself.
func (t *Trie[K, V]) Subtrie(key []K) (*Trie[K, V], error) {
	return t.subtrie(key, key)
}

// Keys returns the elements present at the top level of t in insertion
// order. The terminal marker is among them when t itself holds a value.
func (t *Trie[K, V]) Keys() []K {
	return slices.Clone(t.root.order)
}

// Items yields every top-level element of t with the subtrie below it.
// The terminal entry has no subtrie and is skipped.
func (t *Trie[K, V]) Items() iter.Seq2[K, *Trie[K, V]] {
	return func(yield func(K, *Trie[K, V]) bool) {
		for k, sub := range t.root.branches(t.terminal) {
			if !yield(k, &Trie[K, V]{terminal: t.terminal, root: sub}) {
				return
			}
		}
	}
}

// Prefixes yields every key prefix reachable in t, depth first. Each yielded
// slice is freshly allocated.
//
// For the keys [1 2 3 4], [1 2 4] and [2 2 5] it yields
// [1] [1 2] [1 2 3] [1 2 3 4] [1 2 4] [2] [2 2] [2 2 5].
func (t *Trie[K, V]) Prefixes() iter.Seq[[]K] {
	return func(yield func([]K) bool) {
		t.root.prefixesRec(t.terminal, nil, yield)
	}
}

// PrefixesFrom yields every prefix strictly extending key. key itself is not
// yielded. It fails like Subtrie when key cannot be resolved.
func (t *Trie[K, V]) PrefixesFrom(key []K) (iter.Seq[[]K], error) {
	return t.prefixesFrom(key, key)
}

// find is the value lookup shared by the read operations. key must be valid.
func (t *Trie[K, V]) find(key []K) (V, bool) {
	lvl, ok := t.root.walk(key)
	if !ok {
		var zero V
		return zero, false
	}
	return lvl.value(t.terminal)
}

// The unexported forms below take the already decomposed key in parts and
// the caller's original key in orig, which is what errors report.

func (t *Trie[K, V]) lookup(parts []K, orig any) (V, error) {
	if err := validKey(t.terminal, parts); err != nil {
		var zero V
		return zero, keyError("lookup", orig, err)
	}
	v, ok := t.find(parts)
	if !ok {
		return v, keyError("lookup", orig, ErrNotFound)
	}
	return v, nil
}

func (t *Trie[K, V]) subtrie(parts []K, orig any) (*Trie[K, V], error) {
	if err := validKey(t.terminal, parts); err != nil {
		return nil, keyError("subtrie", orig, err)
	}
	lvl, ok := t.root.walk(parts)
	if !ok {
		return nil, keyError("subtrie", orig, ErrNotFound)
	}
	return &Trie[K, V]{terminal: t.terminal, root: lvl}, nil
}

func (t *Trie[K, V]) prefixesFrom(parts []K, orig any) (iter.Seq[[]K], error) {
	if err := validKey(t.terminal, parts); err != nil {
		return nil, keyError("prefixes", orig, err)
	}
	lvl, ok := t.root.walk(parts)
	if !ok {
		return nil, keyError("prefixes", orig, ErrNotFound)
	}
	start := slices.Clone(parts)
	return func(yield func([]K) bool) {
		lvl.prefixesRec(t.terminal, start, yield)
	}, nil
}

func (t *Trie[K, V]) set(parts []K, orig any, value V) error {
	if err := validKey(t.terminal, parts); err != nil {
		return keyError("set", orig, err)
	}
	t.root.walkOrCreate(parts).store(t.terminal, value)
	return nil
}

func (t *Trie[K, V]) delete(parts []K, orig any) error {
	if err := validKey(t.terminal, parts); err != nil {
		return keyError("delete", orig, err)
	}
	lvl, ok := t.root.walk(parts)
	if !ok || !lvl.remove(t.terminal) {
		return keyError("delete", orig, ErrNotFound)
	}
	return nil
}
