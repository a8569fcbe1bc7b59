package trie

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stringTerminal is the marker of every string trie. No rune encodes to the
// empty string, so it never collides with a key element.
const stringTerminal = ""

// StringOption configures how a string trie folds its keys.
type StringOption func(*keyFolder)

// WithNormalisation makes the trie strip diacritics from keys.
// For example, Jurg will find Jürg, Jürg will find Jurg.
func WithNormalisation() StringOption {
	return func(f *keyFolder) { f.normalised = true }
}

// CaseInsensitive makes the trie lower-case keys.
func CaseInsensitive() StringOption {
	return func(f *keyFolder) { f.caseInsensitive = true }
}

// keyFolder turns a string key into the per-rune elements stored in the trie.
type keyFolder struct {
	normalised, caseInsensitive bool
}

func newKeyFolder(opts []StringOption) keyFolder {
	var f keyFolder
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f keyFolder) fold(key string) (string, error) {
	if f.normalised {
		transformer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		normal, _, err := transform.String(transformer, key)
		if err != nil {
			return "", err
		}
		key = normal
	}
	if f.caseInsensitive {
		key = strings.ToLower(key)
	}
	return key, nil
}

func (f keyFolder) split(key string) ([]string, error) {
	folded, err := f.fold(key)
	if err != nil {
		return nil, err
	}
	if folded == "" {
		return nil, ErrInvalidKey
	}
	return strings.Split(folded, ""), nil
}

// StringTrie is an immutable Trie keyed by strings, one element per rune,
// with the empty string as its terminal marker.
type StringTrie[V any] struct {
	trie   *Trie[string, V]
	folder keyFolder
}

// NewStringTrie builds a StringTrie from key/value pairs. Later duplicates
// overwrite earlier ones; an empty key fails with ErrInvalidKey.
func NewStringTrie[V any](items iter.Seq2[string, V], opts ...StringOption) (*StringTrie[V], error) {
	folder := newKeyFolder(opts)
	root, err := build(stringTerminal, items, folder.split)
	if err != nil {
		return nil, err
	}
	root.freeze()
	return &StringTrie[V]{trie: &Trie[string, V]{terminal: stringTerminal, root: root}, folder: folder}, nil
}

// StringTrieFromMap builds a StringTrie from m, inserting keys in sorted order.
func StringTrieFromMap[V any](m map[string]V, opts ...StringOption) (*StringTrie[V], error) {
	return NewStringTrie(sortedMap(m), opts...)
}

func sortedMap[V any](m map[string]V) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// Get returns the value stored at key, or def.
func (s *StringTrie[V]) Get(key string, def V) V {
	parts, err := s.folder.split(key)
	if err != nil {
		return def
	}
	return s.trie.Get(parts, def)
}

// Lookup returns the value stored at key or a *KeyError wrapping ErrNotFound.
func (s *StringTrie[V]) Lookup(key string) (V, error) {
	parts, err := s.folder.split(key)
	if err != nil {
		var zero V
		return zero, keyError("lookup", key, err)
	}
	return s.trie.lookup(parts, key)
}

// Contains reports whether key holds a non-zero value. See Trie.Contains.
func (s *StringTrie[V]) Contains(key string) bool {
	parts, err := s.folder.split(key)
	if err != nil {
		return false
	}
	return s.trie.Contains(parts)
}

// Has reports whether a value is stored at key.
func (s *StringTrie[V]) Has(key string) bool {
	parts, err := s.folder.split(key)
	if err != nil {
		return false
	}
	return s.trie.Has(parts)
}

// Subtrie returns a view of the level reached by key.
func (s *StringTrie[V]) Subtrie(key string) (*StringTrie[V], error) {
	parts, err := s.folder.split(key)
	if err != nil {
		return nil, keyError("subtrie", key, err)
	}
	sub, err := s.trie.subtrie(parts, key)
	if err != nil {
		return nil, err
	}
	return &StringTrie[V]{trie: sub, folder: s.folder}, nil
}

// Keys returns the top-level runes of s as strings. The empty string is
// among them when s itself holds a value.
func (s *StringTrie[V]) Keys() []string {
	return s.trie.Keys()
}

// Items yields every top-level rune with the subtrie below it.
func (s *StringTrie[V]) Items() iter.Seq2[string, *StringTrie[V]] {
	return func(yield func(string, *StringTrie[V]) bool) {
		for k, sub := range s.trie.Items() {
			if !yield(k, &StringTrie[V]{trie: sub, folder: s.folder}) {
				return
			}
		}
	}
}

// Prefixes yields every prefix reachable in s, as folded strings.
func (s *StringTrie[V]) Prefixes() iter.Seq[string] {
	return joined(s.trie.Prefixes())
}

// PrefixesFrom yields every prefix strictly extending key.
func (s *StringTrie[V]) PrefixesFrom(key string) (iter.Seq[string], error) {
	parts, err := s.folder.split(key)
	if err != nil {
		return nil, keyError("prefixes", key, err)
	}
	seq, err := s.trie.prefixesFrom(parts, key)
	if err != nil {
		return nil, err
	}
	return joined(seq), nil
}

func joined(seq iter.Seq[[]string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for parts := range seq {
			if !yield(strings.Join(parts, "")) {
				return
			}
		}
	}
}

// MutableStringTrie is a StringTrie that supports Set and Delete.
type MutableStringTrie[V any] struct {
	*StringTrie[V]
}

// NewMutableStringTrie returns an empty MutableStringTrie.
func NewMutableStringTrie[V any](opts ...StringOption) *MutableStringTrie[V] {
	return &MutableStringTrie[V]{&StringTrie[V]{
		trie:   &Trie[string, V]{terminal: stringTerminal, root: newLevel[string, V]()},
		folder: newKeyFolder(opts),
	}}
}

// MutableStringTrieFromItems builds a MutableStringTrie from key/value pairs.
func MutableStringTrieFromItems[V any](items iter.Seq2[string, V], opts ...StringOption) (*MutableStringTrie[V], error) {
	folder := newKeyFolder(opts)
	root, err := build(stringTerminal, items, folder.split)
	if err != nil {
		return nil, err
	}
	return &MutableStringTrie[V]{&StringTrie[V]{
		trie:   &Trie[string, V]{terminal: stringTerminal, root: root},
		folder: folder,
	}}, nil
}

// MutableStringTrieFromMap builds a MutableStringTrie from m in sorted key order.
func MutableStringTrieFromMap[V any](m map[string]V, opts ...StringOption) (*MutableStringTrie[V], error) {
	return MutableStringTrieFromItems(sortedMap(m), opts...)
}

// Set stores value at key, overwriting any previous value.
func (m *MutableStringTrie[V]) Set(key string, value V) error {
	parts, err := m.folder.split(key)
	if err != nil {
		return keyError("set", key, err)
	}
	return m.trie.set(parts, key, value)
}

// Delete removes the value stored at key.
func (m *MutableStringTrie[V]) Delete(key string) error {
	parts, err := m.folder.split(key)
	if err != nil {
		return keyError("delete", key, err)
	}
	return m.trie.delete(parts, key)
}

// Subtrie returns a mutable view of the level reached by key.
func (m *MutableStringTrie[V]) Subtrie(key string) (*MutableStringTrie[V], error) {
	sub, err := m.StringTrie.Subtrie(key)
	if err != nil {
		return nil, err
	}
	return &MutableStringTrie[V]{sub}, nil
}

// Items yields every top-level rune with a mutable view below it.
func (m *MutableStringTrie[V]) Items() iter.Seq2[string, *MutableStringTrie[V]] {
	return func(yield func(string, *MutableStringTrie[V]) bool) {
		for k, sub := range m.StringTrie.Items() {
			if !yield(k, &MutableStringTrie[V]{sub}) {
				return
			}
		}
	}
}
