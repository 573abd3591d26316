package config

import (
	"fmt"
	"strings"
)

// CycleError reports a parent chain that revisits a tech. Every tech on the
// chain fails resolution until the source document is fixed.
type CycleError struct {
	// Chain lists the techs along the detected cycle, ending with the
	// revisited one.
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("parent cycle detected: %s", strings.Join(e.Chain, " -> "))
}

// UnresolvedParentError reports a parent reference that no layer defines.
type UnresolvedParentError struct {
	Tech   string
	Parent string
}

func (e *UnresolvedParentError) Error() string {
	return fmt.Sprintf("tech %q declares parent %q, which is not defined in any layer", e.Tech, e.Parent)
}

// MissingDefaultsError reports a registry without the `defaults` root.
type MissingDefaultsError struct{}

func (e *MissingDefaultsError) Error() string {
	return fmt.Sprintf("no root %q definition found in any layer", DefaultsName)
}

// DuplicateTechError reports the same tech name defined twice within a
// single layer. Redefinition across layers is override intent and is
// merged instead.
type DuplicateTechError struct {
	Tech   string
	Layer  string
	Source string
}

func (e *DuplicateTechError) Error() string {
	return fmt.Sprintf("tech %q defined more than once in layer %q (second definition in %s)", e.Tech, e.Layer, e.Source)
}
