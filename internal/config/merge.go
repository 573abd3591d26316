package config

// Merge returns a new AttributeSet with overlay applied on top of base.
//
// Groups merge key-wise recursively, so overriding a single nested leaf
// never erases its siblings. A leaf in overlay replaces whatever the base
// holds under the same name, and an overlay group likewise replaces a base
// leaf outright. Neither input is mutated and the result aliases neither.
func Merge(base, overlay AttributeSet) AttributeSet {
	if base == nil {
		return overlay.Copy()
	}
	if overlay == nil {
		return base.Copy()
	}

	out := base.Copy()
	for key, attr := range overlay {
		existing, ok := out[key]
		if ok && attr.IsGroup() && existing.IsGroup() {
			out[key] = GroupAttr(Merge(existing.Group, attr.Group))
			continue
		}
		if attr.IsGroup() {
			out[key] = GroupAttr(attr.Group.Copy())
			continue
		}
		out[key] = LeafAttr(*attr.Value)
	}
	return out
}
