package config

// DefaultsName is the reserved name of the root definition. Every library
// must define it, and it is the only definition allowed to omit a parent.
const DefaultsName = "defaults"

// TechDefinition is the raw, unresolved definition of a single technology:
// the attribute values it declares itself, before any inheritance is
// applied.
type TechDefinition struct {
	// Name is the unique identifier of the tech within its registry.
	Name string
	// Parent names the definition this tech inherits from. Empty only for
	// the `defaults` root.
	Parent string
	// Attributes holds the values this definition declares or overrides.
	Attributes AttributeSet
	// Source records the file the definition came from, for error messages.
	Source string
}

// Model is one loaded layer of tech definitions: a base defaults library or
// a scenario overlay. Order follows the source documents.
type Model struct {
	Techs []*TechDefinition
}
