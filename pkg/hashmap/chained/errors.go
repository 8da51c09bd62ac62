package chained

import "github.com/pkg/errors"

var (
	// ErrInvalidKey is returned when a key is missing, not text, or empty
	ErrInvalidKey = errors.New("chained: invalid key")
)

func checkKey(key, op string) error {
	if key == "" {
		return errors.Wrapf(ErrInvalidKey, "%s: empty key", op)
	}
	return nil
}

// KeyOf converts a dynamically typed key into a table key. Anything other
// than a non-empty string (nil, numbers, byte slices...) is rejected with
// ErrInvalidKey.
func KeyOf(k interface{}) (string, error) {
	switch key := k.(type) {
	case nil:
		return "", errors.Wrap(ErrInvalidKey, "key is nil")
	case string:
		if key == "" {
			return "", errors.Wrap(ErrInvalidKey, "key is empty")
		}
		return key, nil
	default:
		return "", errors.Wrapf(ErrInvalidKey, "key has type %T, want string", k)
	}
}
