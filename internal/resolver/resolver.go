package resolver

import (
	"context"
	"fmt"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/ctxlog"
	"github.com/vk/techgridgo/internal/lineage"
	"github.com/vk/techgridgo/internal/registry"
)

// Resolver flattens inheritance chains against a single registry snapshot.
type Resolver struct {
	reg    *registry.Registry
	forest *lineage.Forest
}

// New validates the registry, builds its inheritance forest, and returns a
// resolver bound to that snapshot. Structural errors (missing defaults,
// unresolved parents, parent cycles) surface here, before any resolution
// runs.
func New(ctx context.Context, reg *registry.Registry) (*Resolver, error) {
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}

	forest, err := lineage.Build(ctx, reg.Parents())
	if err != nil {
		return nil, err
	}

	return &Resolver{reg: reg, forest: forest}, nil
}

// Resolve produces the fully merged attribute set for the named tech: the
// inheritance chain is walked from the `defaults` root down to the tech
// itself, deep-merging each level's declared attributes onto the inherited
// ones. The result aliases nothing in the registry.
func (r *Resolver) Resolve(ctx context.Context, name string) (config.AttributeSet, error) {
	logger := ctxlog.FromContext(ctx)

	chain, err := r.forest.Chain(name)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve tech %q: %w", name, err)
	}

	resolved := config.AttributeSet{}
	for _, ancestor := range chain {
		def, ok := r.reg.Tech(ancestor)
		if !ok {
			// Validate guarantees presence; reaching this means the
			// registry was mutated after the snapshot was taken.
			return nil, fmt.Errorf("cannot resolve tech %q: ancestor %q vanished from registry", name, ancestor)
		}
		resolved = config.Merge(resolved, def.Attributes)
	}

	logger.Debug("Tech resolved.", "tech", name, "chain", chain)
	return resolved, nil
}

// Names returns all resolvable tech names in sorted order.
func (r *Resolver) Names() []string {
	return r.reg.Names()
}
