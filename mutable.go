package trie

import "iter"

// MutableTrie is a Trie that can be modified after construction. Its levels
// are never finalized, so Set can grow new branches. Views returned by
// Subtrie and Items write through to the parent.
type MutableTrie[K comparable, V any] struct {
	*Trie[K, V]
}

// NewMutable returns an empty MutableTrie using terminal as its marker.
func NewMutable[K comparable, V any](terminal K) *MutableTrie[K, V] {
	return &MutableTrie[K, V]{&Trie[K, V]{terminal: terminal, root: newLevel[K, V]()}}
}

// MutableFromItems builds a MutableTrie the way FromItems builds a Trie.
func MutableFromItems[K comparable, V any](terminal K, items iter.Seq2[[]K, V]) (*MutableTrie[K, V], error) {
	root, err := build(terminal, items, func(key []K) ([]K, error) {
		return key, validKey(terminal, key)
	})
	if err != nil {
		return nil, err
	}
	return &MutableTrie[K, V]{&Trie[K, V]{terminal: terminal, root: root}}, nil
}

// MutableFromSlice is MutableFromItems for a slice of items.
func MutableFromSlice[K comparable, V any](terminal K, items []Item[K, V]) (*MutableTrie[K, V], error) {
	return MutableFromItems(terminal, itemSeq(items))
}

// Set stores value at key, creating intermediate levels and overwriting any
// previous value.
func (t *MutableTrie[K, V]) Set(key []K, value V) error {
	return t.set(key, key, value)
}

// Delete removes the value stored at key. Levels left empty are kept and
// read as holding no value.
func (t *MutableTrie[K, V]) Delete(key []K) error {
	return t.delete(key, key)
}

// Subtrie returns a mutable view of the branch level reached by key.
func (t *MutableTrie[K, V]) Subtrie(key []K) (*MutableTrie[K, V], error) {
	sub, err := t.Trie.Subtrie(key)
	if err != nil {
		return nil, err
	}
	return &MutableTrie[K, V]{sub}, nil
}

// Items yields every top-level element of t with a mutable view below it.
func (t *MutableTrie[K, V]) Items() iter.Seq2[K, *MutableTrie[K, V]] {
	return func(yield func(K, *MutableTrie[K, V]) bool) {
		for k, sub := range t.Trie.Items() {
			if !yield(k, &MutableTrie[K, V]{sub}) {
				return
			}
		}
	}
}
