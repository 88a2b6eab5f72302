package rules

import (
	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

// Repeaters walks the layout collection and collects every repeating group.
// A node qualifies when it is explicitly flagged repeating or declares the
// dedicated repeater control type. A repeater records only the binding ids of
// its immediate children; nested repeaters are discovered as their own
// entries, not flattened in.
func (n *Normalizer) Repeaters(layouts any) []schema.Repeater {
	var out []schema.Repeater

	roots := n.acc.Unwrap(layouts)
	if roots == nil {
		return out
	}
	list := n.acc.Slice(roots)
	if list == nil {
		list = []any{roots}
	}

	for _, layout := range list {
		sourcegraph.Recurse(layout, 0, n.maxDepth, func(node any, depth int) []any {
			m := n.acc.Map(node)
			if m == nil {
				return nil
			}
			if n.isRepeater(m) {
				out = append(out, n.repeater(m))
			}
			var children []any
			for _, key := range []string{"Panels", "Controls"} {
				children = append(children, n.acc.Slice(m[key])...)
			}
			return children
		})
	}
	return out
}

func (n *Normalizer) isRepeater(node map[string]any) bool {
	if raw, ok := node["IsRepeating"]; ok && sourcegraph.Bool(n.acc.Unwrap(raw)) {
		return true
	}
	return sourcegraph.String(n.acc.Unwrap(node["ControlType"])) == schema.ControlTypeRepeater
}

func (n *Normalizer) repeater(node map[string]any) schema.Repeater {
	out := schema.Repeater{
		ID:       sourcegraph.String(n.acc.Unwrap(node["BpID"])),
		Path:     sourcegraph.String(n.acc.Unwrap(node["BindingPath"])),
		Children: []string{},
	}
	for _, rawChild := range n.acc.Slice(node["Controls"]) {
		child := n.acc.Map(rawChild)
		if child == nil {
			continue
		}
		if id := sourcegraph.String(n.acc.Unwrap(child["BpID"])); id != "" {
			out.Children = append(out.Children, id)
		}
	}
	return out
}
