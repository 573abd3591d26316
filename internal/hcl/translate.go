package hcl

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/techgridgo/internal/config"
	"github.com/vk/techgridgo/internal/schema"
)

// disabledSentinel backs the capsule value exposed as the `disabled`
// keyword. A capsule type can never collide with a user-supplied number,
// bool, or string.
type disabledSentinel struct{}

var (
	disabledType = cty.Capsule("disabled", reflect.TypeOf(disabledSentinel{}))
	disabledVal  = cty.CapsuleVal(disabledType, &disabledSentinel{})
)

// evalContext returns the expression scope for library files. Only the two
// sentinel keywords are in scope; library files are plain data and cannot
// reference other techs.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"inf":      cty.PositiveInfinity,
			"disabled": disabledVal,
		},
	}
}

// translateTech converts a decoded tech block into the agnostic model.
func translateTech(t *schema.Tech, filePath string) (*config.TechDefinition, error) {
	// The parent attribute was consumed by the schema decode but is still
	// visible on the raw syntax body, so it is skipped here.
	attrs, err := bodyToAttributes(t.Body, map[string]struct{}{"parent": {}})
	if err != nil {
		return nil, fmt.Errorf("tech %q in %s: %w", t.Name, filePath, err)
	}
	return &config.TechDefinition{
		Name:       t.Name,
		Parent:     t.Parent,
		Attributes: attrs,
		Source:     filePath,
	}, nil
}

// bodyToAttributes walks an HCL body recursively: attributes become leaves,
// nested blocks become groups, block labels become intermediate group keys.
func bodyToAttributes(body hcl.Body, skip map[string]struct{}) (config.AttributeSet, error) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unsupported HCL body implementation %T", body)
	}

	attrs := config.AttributeSet{}
	for name, attr := range syntaxBody.Attributes {
		if _, skipped := skip[name]; skipped {
			continue
		}
		val, diags := attr.Expr.Value(evalContext())
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		leaf, err := ctyToValue(val, attr.SrcRange)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		attrs[name] = config.LeafAttr(leaf)
	}

	for _, block := range syntaxBody.Blocks {
		group, err := bodyToAttributes(block.Body, nil)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", block.Type, err)
		}

		// Labels nest the group one level deeper per label, so that
		// `costs "monetary" { ... }` lands under costs.monetary.
		for i := len(block.Labels) - 1; i >= 0; i-- {
			group = config.AttributeSet{block.Labels[i]: config.GroupAttr(group)}
		}

		existing, present := attrs[block.Type]
		if present && !existing.IsGroup() {
			return nil, fmt.Errorf("%q is defined both as an attribute and as a block", block.Type)
		}
		if present {
			attrs[block.Type] = config.GroupAttr(config.Merge(existing.Group, group))
			continue
		}
		attrs[block.Type] = config.GroupAttr(group)
	}

	return attrs, nil
}

// ctyToValue converts an evaluated expression into a tagged scalar.
func ctyToValue(val cty.Value, rng hcl.Range) (config.Value, error) {
	if val.IsNull() {
		return config.Value{}, fmt.Errorf("%s: null is not a valid attribute value", rng)
	}

	ty := val.Type()
	switch {
	case ty.Equals(disabledType):
		return config.DisabledVal(), nil
	case ty.Equals(cty.Number):
		bf := val.AsBigFloat()
		if bf.IsInf() {
			return config.InfVal(), nil
		}
		f, _ := bf.Float64()
		return config.NumberVal(f), nil
	case ty.Equals(cty.Bool):
		return config.BoolVal(val.True()), nil
	case ty.Equals(cty.String):
		return config.StringVal(val.AsString()), nil
	}
	return config.Value{}, fmt.Errorf("%s: unsupported value type %s", rng, ty.FriendlyName())
}
