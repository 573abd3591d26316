// Package app wires the application together: logger, library loaders,
// the layered registry, and the resolver. Construction panics on fatal
// configuration errors; the CLI entrypoint recovers and reports them.
package app
