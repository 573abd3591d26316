// Package registry holds the raw tech definitions collected from layered
// sources: a base defaults library first, then any number of scenario
// overlays.
//
// Within a single layer a tech name may appear only once; a redefinition in
// a later layer is override intent and is deep-merged onto the earlier raw
// definition. After all layers are added the registry is validated (the
// `defaults` root must exist and every parent reference must resolve) and
// treated as immutable: a configuration reload builds a new registry
// instead of mutating this one, so in-flight resolutions are never
// affected.
package registry
