// Package schema defines the HCL block structure of tech library files.
package schema

import "github.com/hashicorp/hcl/v2"

// Tech represents a `tech "name" { ... }` block in a library file. The
// remaining body holds the attribute tree: scalar attributes and nested
// groups such as `constraints`, `costs "monetary"`, `costs_per_distance`,
// `constraints_per_distance` and `depreciation`.
type Tech struct {
	Name   string   `hcl:"name,label"`
	Parent string   `hcl:"parent,optional"`
	Body   hcl.Body `hcl:",remain"`
}

// Library represents the top-level structure of a tech library file,
// containing all tech definitions it declares.
type Library struct {
	Techs []*Tech  `hcl:"tech,block"`
	Body  hcl.Body `hcl:",remain"`
}
