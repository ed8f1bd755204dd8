package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// KeyFunc returns a fresh block key.
type KeyFunc func() string

// MaxKeyAttempts bounds how many keys FreshKey draws before giving up.
const MaxKeyAttempts = 16

var ErrKeyExhausted = errors.New("no unused block key generated")

// RandomKey generates a short random block key.
func RandomKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// FreshKey draws keys from fn until one is non-empty and unused in doc.
// A nil fn falls back to RandomKey.
func FreshKey(doc Document, fn KeyFunc) (string, error) {
	if fn == nil {
		fn = RandomKey
	}

	for i := 0; i < MaxKeyAttempts; i++ {
		key := fn()
		if key != "" && !doc.Contains(key) {
			return key, nil
		}
	}

	return "", ErrKeyExhausted
}

// SequentialKeys returns a KeyFunc yielding prefix1, prefix2, ...
// It is not safe for concurrent use.
func SequentialKeys(prefix string) KeyFunc {
	clock := 0
	return func() string {
		clock++
		return prefix + fmt.Sprint(clock)
	}
}
