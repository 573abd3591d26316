// Package resolver flattens tech inheritance chains into fully merged
// attribute sets.
//
// A Resolver is constructed against a validated, frozen registry snapshot:
// construction runs the structural checks and static cycle detection, so a
// Resolver that exists can only fail on unknown tech names. Resolution is
// a pure function of the snapshot — it never mutates the registry, which
// is what makes concurrent resolution safe without coordination.
package resolver
