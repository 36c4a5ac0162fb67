// Package assets provides the preview themes used to style rendered documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - themes compiled into the binary (go:embed)
//	    ├── FilesystemLoader  - themes from the engine config directory
//	    └── AssetResolver     - custom first, embedded fallback
//
// The engine builds an AssetResolver over its config directory so a user can
// drop {configDir}/styles/{name}.css to override or add a theme without
// rebuilding.
//
// # Security
//
// Theme names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within its base path.
package assets
