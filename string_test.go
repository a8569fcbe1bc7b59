package trie

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Product struct {
	ID    int
	Price float64
}

func TestStringTrie(t *testing.T) {
	t.Run("StringTrieFromMap and Lookup", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]int{"ipad": 1, "mac": 2, "iphone": 3})
		require.NoError(t, err)
		v, err := tr.Lookup("ipad")
		require.NoError(t, err)
		assert.Equal(t, 1, v)
		assert.Equal(t, 3, tr.Get("iphone", 0))
		assert.Equal(t, -1, tr.Get("ip", -1))
	})

	t.Run("Lookup error carries the string key", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]int{"ipad": 1})
		require.NoError(t, err)
		_, err = tr.Lookup("ipa")
		require.ErrorIs(t, err, ErrNotFound)
		var kerr *KeyError
		require.True(t, errors.As(err, &kerr))
		assert.Equal(t, "ipa", kerr.Key)
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := StringTrieFromMap(map[string]int{"": 1})
		assert.ErrorIs(t, err, ErrInvalidKey)

		tr, err := StringTrieFromMap(map[string]int{"a": 1})
		require.NoError(t, err)
		_, err = tr.Lookup("")
		assert.ErrorIs(t, err, ErrInvalidKey)
		assert.Equal(t, 7, tr.Get("", 7))
		_, err = tr.Subtrie("")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("keys and subtries", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]Product{
			"iPhone": {ID: 1, Price: 999},
			"iPad":   {ID: 2, Price: 799},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"i"}, tr.Keys())

		sub, err := tr.Subtrie("iP")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "h"}, sub.Keys())
		p, err := sub.Lookup("hone")
		require.NoError(t, err)
		assert.Equal(t, 999.0, p.Price)

		leafView, err := tr.Subtrie("iPad")
		require.NoError(t, err)
		assert.Equal(t, []string{""}, leafView.Keys())
	})

	t.Run("multi-byte runes", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]string{"日本": "japan", "日本語": "japanese"})
		require.NoError(t, err)
		assert.Equal(t, []string{"日"}, tr.Keys())
		assert.Equal(t, []string{"日", "日本", "日本語"}, slices.Collect(tr.Prefixes()))
		assert.True(t, tr.Has("日本"))
		assert.False(t, tr.Has("日"))
	})

	t.Run("Items", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]int{"ab": 1, "b": 2})
		require.NoError(t, err)
		got := map[string]int{}
		for k, sub := range tr.Items() {
			got[k] = len(sub.Keys())
		}
		assert.Equal(t, map[string]int{"a": 1, "b": 1}, got)
	})

	t.Run("Prefixes", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]bool{"tea": true, "ten": true, "to": true, "inn": true})
		require.NoError(t, err)
		want := []string{"i", "in", "inn", "t", "te", "tea", "ten", "to"}
		if diff := cmp.Diff(want, slices.Collect(tr.Prefixes()), cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
			t.Errorf("Prefixes() mismatch (-want +got):\n%s", diff)
		}

		seq, err := tr.PrefixesFrom("te")
		require.NoError(t, err)
		assert.Equal(t, []string{"tea", "ten"}, slices.Collect(seq))

		_, err = tr.PrefixesFrom("x")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Contains treats zero values as absent", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]int{"zero": 0, "one": 1})
		require.NoError(t, err)
		assert.False(t, tr.Contains("zero"))
		assert.True(t, tr.Has("zero"))
		assert.True(t, tr.Contains("one"))
	})

	t.Run("Contains treats empty slices as absent", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string][]int{"none": {}, "nil": nil, "some": {0}})
		require.NoError(t, err)
		assert.False(t, tr.Contains("none"))
		assert.False(t, tr.Contains("nil"))
		assert.True(t, tr.Contains("some"))
		assert.True(t, tr.Has("none"))
	})

	t.Run("normalisation and case folding", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]string{"Jürgen": "j"}, WithNormalisation(), CaseInsensitive())
		require.NoError(t, err)
		assert.Equal(t, "j", tr.Get("jurgen", ""))
		assert.Equal(t, "j", tr.Get("JÜRGEN", ""))
		assert.Equal(t, []string{"j"}, tr.Keys())

		sub, err := tr.Subtrie("JU")
		require.NoError(t, err)
		assert.True(t, sub.Has("RGEN"))
	})

	t.Run("without folding keys are exact", func(t *testing.T) {
		tr, err := StringTrieFromMap(map[string]string{"Jürgen": "j"})
		require.NoError(t, err)
		assert.False(t, tr.Has("jurgen"))
		assert.True(t, tr.Has("Jürgen"))
	})

	t.Run("a key of combining marks only folds to empty", func(t *testing.T) {
		_, err := StringTrieFromMap(map[string]int{"\u0301": 1}, WithNormalisation())
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestMutableStringTrie(t *testing.T) {
	t.Run("Set and Delete", func(t *testing.T) {
		tr := NewMutableStringTrie[Product]()
		require.NoError(t, tr.Set("iPhone", Product{ID: 1, Price: 999}))
		require.NoError(t, tr.Set("iPad", Product{ID: 2, Price: 799}))

		p, err := tr.Lookup("iPhone")
		require.NoError(t, err)
		assert.Equal(t, 1, p.ID)

		require.NoError(t, tr.Delete("iPad"))
		assert.False(t, tr.Has("iPad"))
		assert.ErrorIs(t, tr.Delete("iPad"), ErrNotFound)
		assert.ErrorIs(t, tr.Set("", Product{}), ErrInvalidKey)
	})

	t.Run("from map", func(t *testing.T) {
		tr, err := MutableStringTrieFromMap(map[string]int{"ipad": 1, "mac": 2})
		require.NoError(t, err)
		require.NoError(t, tr.Set("macbook", 3))
		assert.Equal(t, 2, tr.Get("mac", 0))
		assert.Equal(t, 3, tr.Get("macbook", 0))
		assert.Equal(t, []string{"i", "m"}, tr.Keys())
	})

	t.Run("case-insensitive writes", func(t *testing.T) {
		tr := NewMutableStringTrie[int](CaseInsensitive())
		require.NoError(t, tr.Set("Mac", 1))
		require.NoError(t, tr.Set("MAC", 2))
		assert.Equal(t, 2, tr.Get("mac", 0))
		require.NoError(t, tr.Delete("mAc"))
		assert.False(t, tr.Has("Mac"))
	})

	t.Run("views write through", func(t *testing.T) {
		tr, err := MutableStringTrieFromItems[int](func(yield func(string, int) bool) {
			yield("tea", 1)
		})
		require.NoError(t, err)
		sub, err := tr.Subtrie("te")
		require.NoError(t, err)
		require.NoError(t, sub.Set("n", 10))
		assert.Equal(t, 10, tr.Get("ten", 0))

		for k, view := range tr.Items() {
			assert.Equal(t, "t", k)
			require.NoError(t, view.Set("o", 2))
		}
		assert.Equal(t, 2, tr.Get("to", 0))
	})
}
