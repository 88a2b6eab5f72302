package sourcegraph

// Graph is the engine's read-only view of the host application's form model.
// The four root containers are loosely typed because the host owns their
// shape; any of them may be absent. The engine never mutates a Graph.
type Graph struct {
	// Layouts is the LayoutCollection root: a single layout object or an
	// ordered list of layout objects.
	Layouts any

	// FieldDictionary is the flat list of dictionary field entries.
	FieldDictionary any

	// ResourceTable is the two-level enumeration lookup table.
	ResourceTable any

	// ActionTable carries rule actions: a flat legacy action list, a rich
	// per-path form-action map, or both.
	ActionTable any
}

// Empty reports whether none of the four root containers is present.
func (g *Graph) Empty() bool {
	if g == nil {
		return true
	}
	return g.Layouts == nil && g.FieldDictionary == nil && g.ResourceTable == nil && g.ActionTable == nil
}
