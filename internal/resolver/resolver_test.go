package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/registry"
)

// fixtureRegistry builds the canonical test library: defaults with an
// unbounded r_cap and a zero default cost class, a pass-through supply
// archetype, a ccgt instance with overrides, and the unmet-demand
// placeholder pair.
func fixtureRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	model := &config.Model{Techs: []*config.TechDefinition{
		{
			Name: "defaults",
			Attributes: config.AttributeSet{
				"stack_weight": config.LeafAttr(config.NumberVal(100)),
				"constraints": config.GroupAttr(config.AttributeSet{
					"r_cap": config.GroupAttr(config.AttributeSet{
						"max": config.LeafAttr(config.InfVal()),
					}),
					"r_area": config.GroupAttr(config.AttributeSet{
						"max": config.LeafAttr(config.DisabledVal()),
					}),
					"e_eff":   config.LeafAttr(config.NumberVal(1.0)),
					"force_r": config.LeafAttr(config.BoolVal(false)),
				}),
				"costs": config.GroupAttr(config.AttributeSet{
					"default": config.GroupAttr(config.AttributeSet{
						"e_cap": config.LeafAttr(config.NumberVal(0)),
					}),
				}),
			},
		},
		{Name: "supply", Parent: "defaults"},
		{
			Name:   "ccgt",
			Parent: "supply",
			Attributes: config.AttributeSet{
				"constraints": config.GroupAttr(config.AttributeSet{
					"e_cap": config.GroupAttr(config.AttributeSet{
						"max": config.LeafAttr(config.NumberVal(50)),
					}),
				}),
				"costs": config.GroupAttr(config.AttributeSet{
					"monetary": config.GroupAttr(config.AttributeSet{
						"e_cap": config.LeafAttr(config.NumberVal(5)),
					}),
				}),
			},
		},
		{
			Name:   "supply_techs_only",
			Parent: "supply",
			Attributes: config.AttributeSet{
				"supply_marker": config.LeafAttr(config.BoolVal(true)),
			},
		},
		{
			Name:   "unmet_demand",
			Parent: "defaults",
			Attributes: config.AttributeSet{
				"costs": config.GroupAttr(config.AttributeSet{
					"monetary": config.GroupAttr(config.AttributeSet{
						"om_var": config.LeafAttr(config.NumberVal(1.0e9)),
					}),
				}),
			},
		},
		{
			Name:   "unmet_demand_as_supply_tech",
			Parent: "supply_techs_only",
			Attributes: config.AttributeSet{
				"costs": config.GroupAttr(config.AttributeSet{
					"monetary": config.GroupAttr(config.AttributeSet{
						"om_var": config.LeafAttr(config.NumberVal(1.0e9)),
					}),
				}),
			},
		},
	}}

	reg := registry.New()
	require.NoError(t, reg.AddLayer(context.Background(), "library", model))
	return reg
}

func TestResolve_InheritanceAndOverrides(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	attrs, err := res.Resolve(ctx, "ccgt")
	require.NoError(t, err)

	// Inherited, untouched.
	val, ok := attrs.Lookup("constraints.r_cap.max")
	require.True(t, ok)
	assert.Equal(t, config.KindInf, val.Kind())

	// Overridden by the tech itself.
	val, ok = attrs.Lookup("constraints.e_cap.max")
	require.True(t, ok)
	assert.Equal(t, 50.0, val.Number())

	// Set by the tech in a new cost class.
	val, ok = attrs.Lookup("costs.monetary.e_cap")
	require.True(t, ok)
	assert.Equal(t, 5.0, val.Number())

	// Inherited sibling cost class, untouched by the override.
	val, ok = attrs.Lookup("costs.default.e_cap")
	require.True(t, ok)
	assert.Equal(t, 0.0, val.Number())

	// Sentinels survive the merge untouched.
	val, ok = attrs.Lookup("constraints.r_area.max")
	require.True(t, ok)
	assert.Equal(t, config.KindDisabled, val.Kind())
	val, ok = attrs.Lookup("constraints.force_r")
	require.True(t, ok)
	assert.Equal(t, config.KindBool, val.Kind())
}

func TestResolve_ParentKeysSurviveUnlessOverridden(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	parent, err := res.Resolve(ctx, "supply")
	require.NoError(t, err)
	child, err := res.Resolve(ctx, "ccgt")
	require.NoError(t, err)

	overridden := map[string]struct{}{
		"constraints.e_cap.max": {},
		"costs.monetary.e_cap":  {},
	}
	for _, path := range []string{
		"stack_weight",
		"constraints.r_cap.max",
		"constraints.r_area.max",
		"constraints.e_eff",
		"constraints.force_r",
		"costs.default.e_cap",
	} {
		if _, skip := overridden[path]; skip {
			continue
		}
		parentVal, ok := parent.Lookup(path)
		require.True(t, ok, "parent missing %s", path)
		childVal, ok := child.Lookup(path)
		require.True(t, ok, "child missing %s", path)
		assert.True(t, parentVal.Equal(childVal), "key %s changed without an override", path)
	}
}

func TestResolve_PlaceholderTechLineage(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	asSupply, err := res.Resolve(ctx, "unmet_demand_as_supply_tech")
	require.NoError(t, err)

	// Inherits everything along the supply lineage plus its own override.
	val, ok := asSupply.Lookup("costs.monetary.om_var")
	require.True(t, ok)
	assert.Equal(t, 1.0e9, val.Number())
	_, ok = asSupply.Lookup("supply_marker")
	assert.True(t, ok)

	// The direct-to-defaults placeholder must not pick up supply-specific keys.
	direct, err := res.Resolve(ctx, "unmet_demand")
	require.NoError(t, err)
	_, ok = direct.Lookup("supply_marker")
	assert.False(t, ok)
	val, ok = direct.Lookup("costs.monetary.om_var")
	require.True(t, ok)
	assert.Equal(t, 1.0e9, val.Number())
}

func TestResolve_Deterministic(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	for _, name := range res.Names() {
		first, err := res.Resolve(ctx, name)
		require.NoError(t, err)
		second, err := res.Resolve(ctx, name)
		require.NoError(t, err)
		assert.True(t, first.Equal(second), "resolving %q twice diverged", name)
	}
}

func TestResolve_ResultDoesNotAliasRegistry(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	attrs, err := res.Resolve(ctx, "ccgt")
	require.NoError(t, err)
	attrs["constraints"].Group["e_cap"].Group["max"] = config.LeafAttr(config.NumberVal(999))

	again, err := res.Resolve(ctx, "ccgt")
	require.NoError(t, err)
	val, ok := again.Lookup("constraints.e_cap.max")
	require.True(t, ok)
	assert.Equal(t, 50.0, val.Number())
}

func TestResolve_UnknownTech(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	_, err = res.Resolve(ctx, "dne")
	assert.ErrorContains(t, err, "node not found")
}

func TestNew_RejectsCyclicRegistry(t *testing.T) {
	ctx := context.Background()
	model := &config.Model{Techs: []*config.TechDefinition{
		{Name: "defaults"},
		{Name: "a", Parent: "b"},
		{Name: "b", Parent: "a"},
	}}
	reg := registry.New()
	require.NoError(t, reg.AddLayer(ctx, "library", model))

	_, err := New(ctx, reg)
	require.Error(t, err)
	var cycleErr *config.CycleError
	assert.True(t, errors.As(err, &cycleErr))
}

func TestNew_RejectsSelfParent(t *testing.T) {
	ctx := context.Background()
	model := &config.Model{Techs: []*config.TechDefinition{
		{Name: "defaults"},
		{Name: "a", Parent: "a"},
	}}
	reg := registry.New()
	require.NoError(t, reg.AddLayer(ctx, "library", model))

	// Validation alone cannot catch this: the parent name resolves, to the
	// tech itself. The forest must report it as a one-node cycle.
	_, err := New(ctx, reg)
	require.Error(t, err)
	var cycleErr *config.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"a", "a"}, cycleErr.Chain)
}

func TestResolveAll_MatchesIndividualResolution(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	all, err := res.ResolveAll(ctx, 4)
	require.NoError(t, err)
	require.Len(t, all, len(res.Names()))

	for _, name := range res.Names() {
		single, err := res.Resolve(ctx, name)
		require.NoError(t, err)
		assert.True(t, single.Equal(all[name]), "ResolveAll diverged for %q", name)
	}
}

func TestResolveAll_SingleWorkerFloor(t *testing.T) {
	ctx := context.Background()
	res, err := New(ctx, fixtureRegistry(t))
	require.NoError(t, err)

	all, err := res.ResolveAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, len(res.Names()))
}
