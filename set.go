package trie

import "iter"

// TrieSet is a Trie used for membership only: every stored key maps to true.
type TrieSet[K comparable] struct {
	*Trie[K, bool]
}

// FromKeys builds a TrieSet holding keys.
func FromKeys[K comparable](terminal K, keys iter.Seq[[]K]) (*TrieSet[K], error) {
	t, err := FromItems[K, bool](terminal, func(yield func([]K, bool) bool) {
		for key := range keys {
			if !yield(key, true) {
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return &TrieSet[K]{t}, nil
}

// IsPrefix reports whether key leads to a node of the set, whether or not
// key itself was stored. Contains requires key to have been stored.
func (s *TrieSet[K]) IsPrefix(key []K) bool {
	_, err := s.Trie.Subtrie(key)
	return err == nil
}

// Subtrie returns the set of key suffixes below key.
func (s *TrieSet[K]) Subtrie(key []K) (*TrieSet[K], error) {
	sub, err := s.Trie.Subtrie(key)
	if err != nil {
		return nil, err
	}
	return &TrieSet[K]{sub}, nil
}

// Items yields every top-level element of s with the set below it.
func (s *TrieSet[K]) Items() iter.Seq2[K, *TrieSet[K]] {
	return func(yield func(K, *TrieSet[K]) bool) {
		for k, sub := range s.Trie.Items() {
			if !yield(k, &TrieSet[K]{sub}) {
				return
			}
		}
	}
}
