// Package config defines the format-agnostic model for technology
// definitions, along with the Loader interface implemented by the
// format-specific packages (HCL, YAML).
//
// A tech library is a forest of named definitions: every definition except
// the root `defaults` declares a parent, and its attribute tree holds only
// the values it overrides. The `config.Model` produced by a loader is one
// layer of raw definitions; the registry and resolver packages combine
// layers and flatten inheritance chains into fully resolved attribute sets.
package config
