package registry

import (
	"context"
	"fmt"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
)

// Validate performs the structural checks that must hold before any
// resolution runs: the `defaults` root exists and has no parent, every
// other tech declares a parent, and every parent reference resolves to a
// registered tech. Cycle detection is left to the inheritance forest,
// which has the topology to report the full chain.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	root, ok := r.techs[config.DefaultsName]
	if !ok {
		return &config.MissingDefaultsError{}
	}
	if root.Parent != "" {
		return fmt.Errorf("root tech %q must not declare a parent (found parent %q)", config.DefaultsName, root.Parent)
	}

	for name, def := range r.techs {
		if name == config.DefaultsName {
			continue
		}
		parent := def.Parent
		if parent == "" {
			// A tech without an explicit parent inherits straight from the
			// root, so there is nothing to resolve.
			continue
		}
		if _, known := r.techs[parent]; !known {
			return &config.UnresolvedParentError{Tech: name, Parent: parent}
		}
	}

	logger.Debug("Registry validation passed.", "techs", len(r.techs))
	return nil
}
