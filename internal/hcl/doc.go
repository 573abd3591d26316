// Package hcl implements the config.Loader interface for tech libraries
// written in HCL.
//
// Library files declare `tech "name"` blocks whose bodies are translated
// verbatim into the format-agnostic attribute tree: scalar attributes
// become leaves, nested blocks become groups, and block labels (as in
// `costs "monetary"`) become intermediate group keys. Expressions are
// evaluated against a context exposing the two sentinels: `inf` for an
// unbounded constraint and `disabled` for a constraint switched off.
package hcl
