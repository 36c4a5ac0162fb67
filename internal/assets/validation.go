package assets

import "fmt"

// MaxNameLength bounds style names.
const MaxNameLength = 64

// ValidateAssetName reports ErrInvalidAssetName unless name is a plain style
// name: ASCII letters, digits, '-' and '_', at most MaxNameLength bytes.
// Anything else could address a file outside the styles directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidAssetName, len(name), MaxNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
