package assets

// AssetLoader loads preview theme stylesheets by name.
type AssetLoader interface {
	// LoadStyle loads a CSS theme by name (without .css extension).
	// Returns ErrStyleNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// StyleNames lists the themes this loader can serve, sorted.
	StyleNames() []string
}
