// Package lineage models the inheritance structure of a tech registry as
// an explicit directed forest with an index from name to node.
//
// Building the forest up front, before any resolution runs, lets cycle
// detection happen statically: a registry whose parent links loop is
// rejected as a whole instead of failing lazily on the first lookup.
package lineage
