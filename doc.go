/*
Package trie provides generic prefix trees keyed by sequences of comparable
elements.

Every trie is created with a terminal marker: an element value reserved to mean
"a value is stored here" rather than "continue descending". The marker must
never occur inside a key. Keys sharing a prefix share branch levels, and a
subtrie obtained with Subtrie is a view onto the same storage as its parent.

Trie is built once and never changes. MutableTrie adds Set and Delete.
StringTrie and MutableStringTrie key by string with the empty string as the
fixed marker, and TrieSet stores membership only.

None of the types are safe for concurrent mutation.
*/
package trie
