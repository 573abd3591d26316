// Package yaml implements the config.Loader interface for tech libraries
// written as YAML documents with a top-level `techs:` mapping.
//
// The format follows the conventions of existing energy-model YAML
// libraries: `inf` (or YAML's native .inf) marks an unbounded constraint,
// and a literal `false` on a numeric bound key (max, min, equals,
// total_max, total_min) disables the constraint rather than being a
// boolean value. Booleans anywhere else, such as force_r, are kept as
// booleans.
package yaml
