package config

import "context"

// Loader is the interface for a format-specific tech library loader.
type Loader interface {
	// Load reads every library document under the given paths (files or
	// directories), translates them into the format-agnostic model, and
	// returns the definitions in source order. A loader silently skips
	// paths that contain no documents in its format, so multiple loaders
	// can be pointed at the same directory tree.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
