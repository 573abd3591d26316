package yaml

import (
	"fmt"

	"github.com/vk/techgridgo/internal/config"
)

// numericBoundKeys are the leaf names whose expected value is a numeric
// bound. On these keys, and only these, a literal false is the disable
// sentinel rather than a boolean value.
var numericBoundKeys = map[string]struct{}{
	"max":       {},
	"min":       {},
	"equals":    {},
	"total_max": {},
	"total_min": {},
}

// translateTech converts one entry of the `techs:` mapping into the
// agnostic model.
func translateTech(name string, raw map[string]any, filePath string) (*config.TechDefinition, error) {
	def := &config.TechDefinition{
		Name:       name,
		Attributes: config.AttributeSet{},
		Source:     filePath,
	}

	for key, val := range raw {
		if key == "parent" {
			parent, ok := val.(string)
			if !ok {
				return nil, fmt.Errorf("tech %q in %s: parent must be a string, got %T", name, filePath, val)
			}
			def.Parent = parent
			continue
		}
		attr, err := translateNode(key, val)
		if err != nil {
			return nil, fmt.Errorf("tech %q in %s: %w", name, filePath, err)
		}
		def.Attributes[key] = attr
	}

	return def, nil
}

// translateNode converts one YAML node into a leaf or a nested group. The
// key is needed to apply the bound-key rule for the disable sentinel.
func translateNode(key string, val any) (config.Attribute, error) {
	switch v := val.(type) {
	case map[string]any:
		group := make(config.AttributeSet, len(v))
		for childKey, childVal := range v {
			attr, err := translateNode(childKey, childVal)
			if err != nil {
				return config.Attribute{}, fmt.Errorf("%s: %w", key, err)
			}
			group[childKey] = attr
		}
		return config.GroupAttr(group), nil
	case bool:
		if !v {
			if _, bound := numericBoundKeys[key]; bound {
				return config.LeafAttr(config.DisabledVal()), nil
			}
		}
		return config.LeafAttr(config.BoolVal(v)), nil
	case int:
		return config.LeafAttr(config.NumberVal(float64(v))), nil
	case int64:
		return config.LeafAttr(config.NumberVal(float64(v))), nil
	case float64:
		// NumberVal folds YAML's native .inf into the unbounded sentinel.
		return config.LeafAttr(config.NumberVal(v)), nil
	case string:
		if v == "inf" {
			return config.LeafAttr(config.InfVal()), nil
		}
		return config.LeafAttr(config.StringVal(v)), nil
	}
	return config.Attribute{}, fmt.Errorf("%s: unsupported value %v (%T)", key, val, val)
}
