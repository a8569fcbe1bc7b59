package trie

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotFound is returned when a key cannot be resolved against the trie.
	ErrNotFound = errors.New("not found")
	// ErrInvalidKey is returned for empty keys and keys containing the
	// terminal marker.
	ErrInvalidKey = errors.New("invalid key")
)

// KeyError records a failed keyed operation and the key the caller supplied.
type KeyError struct {
	Op  string
	Key any
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("trie: %s %v: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

// keyError copies slice keys so a caller reusing its key buffer does not
// change the key the error reports.
func keyError(op string, key any, err error) error {
	if rv := reflect.ValueOf(key); rv.Kind() == reflect.Slice && !rv.IsNil() {
		key = reflect.AppendSlice(reflect.MakeSlice(rv.Type(), 0, rv.Len()), rv).Interface()
	}
	return &KeyError{Op: op, Key: key, Err: err}
}
