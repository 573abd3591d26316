package registry

import (
	"context"
	"sort"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
)

// Registry is the name index of raw tech definitions for a single model
// run. It is safe for concurrent reads once fully populated.
type Registry struct {
	techs map[string]*config.TechDefinition
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		techs: make(map[string]*config.TechDefinition),
	}
}

// AddLayer merges one loaded layer of definitions into the registry. A name
// seen twice within the layer is a DuplicateTechError; a name already known
// from an earlier layer is overridden by deep-merging the new raw
// attributes onto the old ones.
func (r *Registry) AddLayer(ctx context.Context, layer string, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)

	seen := make(map[string]struct{}, len(model.Techs))
	for _, def := range model.Techs {
		if _, dup := seen[def.Name]; dup {
			return &config.DuplicateTechError{Tech: def.Name, Layer: layer, Source: def.Source}
		}
		seen[def.Name] = struct{}{}

		existing, known := r.techs[def.Name]
		if !known {
			r.techs[def.Name] = &config.TechDefinition{
				Name:       def.Name,
				Parent:     def.Parent,
				Attributes: def.Attributes.Copy(),
				Source:     def.Source,
			}
			continue
		}

		logger.Debug("Overriding tech definition from earlier layer.",
			"tech", def.Name, "layer", layer, "source", def.Source)
		merged := &config.TechDefinition{
			Name:       def.Name,
			Parent:     existing.Parent,
			Attributes: config.Merge(existing.Attributes, def.Attributes),
			Source:     def.Source,
		}
		if def.Parent != "" {
			merged.Parent = def.Parent
		}
		r.techs[def.Name] = merged
	}

	logger.Debug("Layer added to registry.", "layer", layer, "techs", len(model.Techs), "total", len(r.techs))
	return nil
}

// Tech returns the raw definition for the given name.
func (r *Registry) Tech(name string) (*config.TechDefinition, bool) {
	def, ok := r.techs[name]
	return def, ok
}

// Names returns all registered tech names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.techs))
	for name := range r.techs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parents returns the name-to-parent mapping for the whole registry, used
// to build the inheritance forest. A tech without an explicit parent
// inherits straight from the root, so its entry is normalized to
// `defaults`; the root itself maps to the empty string.
func (r *Registry) Parents() map[string]string {
	parents := make(map[string]string, len(r.techs))
	for name, def := range r.techs {
		parent := def.Parent
		if parent == "" && name != config.DefaultsName {
			parent = config.DefaultsName
		}
		parents[name] = parent
	}
	return parents
}

// Len returns the number of registered techs.
func (r *Registry) Len() int {
	return len(r.techs)
}
