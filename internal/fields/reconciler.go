// Package fields reconciles the two independently maintained descriptions of
// a form field, the flat field dictionary and the layout tree, into canonical
// descriptors keyed by binding-path identifier.
package fields

import (
	"strings"

	"github.com/goliatone/go-formscan/internal/enums"
	"github.com/goliatone/go-formscan/internal/sanitize"
	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

// Reconciler merges dictionary-sourced and layout-sourced field metadata.
// Layout attributes win whenever both sources describe the same id.
type Reconciler struct {
	acc      *sourcegraph.Accessor
	enums    *enums.Resolver
	maxDepth int
}

// New constructs a Reconciler. The enum resolver must already be indexed.
func New(acc *sourcegraph.Accessor, resolver *enums.Resolver, maxDepth int) *Reconciler {
	if acc == nil {
		acc = sourcegraph.NewAccessor()
	}
	if resolver == nil {
		resolver = enums.New(acc)
	}
	if maxDepth <= 0 {
		maxDepth = sourcegraph.DefaultMaxDepth
	}
	return &Reconciler{acc: acc, enums: resolver, maxDepth: maxDepth}
}

// entry tracks a descriptor plus the raw classification signals observed for
// it while both phases run.
type entry struct {
	desc        schema.FieldDescriptor
	repeating   bool
	declaredMax int
}

// Extract seeds one descriptor per dictionary entry, then overlays every
// layout control that carries a binding-path identifier. The returned
// collection is unordered; sort by id before any order-sensitive use.
func (r *Reconciler) Extract(dictionary, layouts any) []schema.FieldDescriptor {
	index := make(map[string]*entry)
	var order []string

	for _, raw := range r.acc.Slice(dictionary) {
		record := r.acc.Map(raw)
		if record == nil {
			continue
		}
		id := sourcegraph.String(r.acc.Unwrap(record["bpID"]))
		if id == "" {
			continue
		}
		if _, dup := index[id]; dup {
			continue
		}
		index[id] = r.seedFromDictionary(id, record)
		order = append(order, id)
	}

	for _, layout := range r.layoutList(layouts) {
		r.walkLayout(layout, index, &order)
	}

	out := make([]schema.FieldDescriptor, 0, len(order))
	for _, id := range order {
		item := index[id]
		item.desc.Constraints.MaxOccurs = r.classify(item)
		out = append(out, item.desc)
	}
	return out
}

func (r *Reconciler) seedFromDictionary(id string, record map[string]any) *entry {
	str := func(key string) string {
		return sourcegraph.String(r.acc.Unwrap(record[key]))
	}
	item := &entry{desc: schema.FieldDescriptor{
		ID:            id,
		Label:         sanitize.Text(str("label")),
		ControlType:   str("type"),
		FormID:        str("formId"),
		PanelID:       str("panelId"),
		SectionID:     str("sectionId"),
		PresetValueID: str("presetValueId"),
	}}
	if selectable(item.desc.ControlType) {
		if group, ok := r.enums.Lookup(id); ok {
			item.desc.ResourceGroupID = group.ID
			item.desc.PossibleValues = append([]schema.GroupElement(nil), group.Elements...)
		}
	}
	return item
}

// layoutList accepts the LayoutCollection as either a single layout object or
// an ordered list of them.
func (r *Reconciler) layoutList(layouts any) []any {
	unwrapped := r.acc.Unwrap(layouts)
	if unwrapped == nil {
		return nil
	}
	if list := r.acc.Slice(unwrapped); list != nil {
		return list
	}
	return []any{unwrapped}
}

// scope carries the layout position down the control hierarchy.
type scope struct {
	node      any
	formID    string
	panelID   string
	sectionID string
}

func (r *Reconciler) walkLayout(layout any, index map[string]*entry, order *[]string) {
	root := r.acc.Map(layout)
	if root == nil {
		return
	}

	start := scope{
		node:   layout,
		formID: sourcegraph.String(r.acc.Key(layout, "FormID")),
	}
	sourcegraph.Recurse(start, 0, r.maxDepth, func(node any, depth int) []any {
		current, ok := node.(scope)
		if !ok {
			return nil
		}
		m := r.acc.Map(current.node)
		if m == nil {
			return nil
		}

		if id := sourcegraph.String(r.acc.Unwrap(m["BpID"])); id != "" {
			item, exists := index[id]
			if !exists {
				item = &entry{desc: schema.FieldDescriptor{ID: id}}
				index[id] = item
				*order = append(*order, id)
			}
			r.applyControl(item, m, current)
		}

		next := current
		if panelID := sourcegraph.String(r.acc.Unwrap(m["PanelID"])); panelID != "" {
			next.panelID = panelID
		}
		if sectionID := sourcegraph.String(r.acc.Unwrap(m["SectionID"])); sectionID != "" {
			next.sectionID = sectionID
		}

		var children []any
		for _, key := range []string{"Panels", "Controls"} {
			for _, child := range r.acc.Slice(m[key]) {
				children = append(children, scope{
					node:      child,
					formID:    next.formID,
					panelID:   next.panelID,
					sectionID: next.sectionID,
				})
			}
		}
		return children
	})
}

// applyControl overlays layout-sourced attributes onto the descriptor.
// Dictionary attributes survive only where the control stays silent.
func (r *Reconciler) applyControl(item *entry, control map[string]any, where scope) {
	desc := &item.desc
	get := func(key string) any {
		raw, ok := control[key]
		if !ok {
			return nil
		}
		return r.acc.Unwrap(raw)
	}

	if path := sourcegraph.String(get("BindingPath")); path != "" {
		desc.BindingPath = path
	}
	if controlType := sourcegraph.String(get("ControlType")); controlType != "" {
		desc.ControlType = controlType
	}
	if label := sanitize.Text(sourcegraph.String(get("Label"))); label != "" {
		desc.Label = label
	}
	if raw := get("Required"); raw != nil {
		desc.Required = sourcegraph.Bool(raw)
	}

	if min, ok := sourcegraph.Int(get("MinLength")); ok {
		desc.Constraints.MinLength = &min
	}
	if max, ok := sourcegraph.Int(get("MaxLength")); ok {
		desc.Constraints.MaxLength = &max
	}
	if min, ok := sourcegraph.Float(get("Min")); ok {
		desc.Constraints.Min = &min
	}
	if max, ok := sourcegraph.Float(get("Max")); ok {
		desc.Constraints.Max = &max
	}
	if pattern := sourcegraph.String(get("Pattern")); pattern != "" {
		desc.Constraints.Pattern = pattern
	}
	if raw := get("DefaultValue"); raw != nil {
		desc.Constraints.DefaultValue = raw
	}
	if minOccurs, ok := sourcegraph.Int(get("MinOccurs")); ok {
		desc.Constraints.MinOccurs = minOccurs
	}
	if maxOccurs, ok := sourcegraph.Int(get("MaxOccurs")); ok {
		item.declaredMax = maxOccurs
	}
	if raw := get("Nillable"); raw != nil {
		desc.Constraints.Nillable = sourcegraph.Bool(raw)
	}
	if sourcegraph.Bool(get("IsRepeating")) || sourcegraph.Bool(get("IsCollection")) {
		item.repeating = true
	}

	if where.formID != "" {
		desc.FormID = where.formID
	}
	if where.panelID != "" {
		desc.PanelID = where.panelID
	}
	if where.sectionID != "" {
		desc.SectionID = where.sectionID
	}

	if groupID := sourcegraph.String(get("ResourceGroupID")); groupID != "" {
		desc.ResourceGroupID = groupID
		if group, ok := r.enums.Lookup(groupID); ok {
			desc.PossibleValues = append([]schema.GroupElement(nil), group.Elements...)
		}
	} else if selectable(desc.ControlType) && desc.ResourceGroupID == "" {
		if group, ok := r.enums.Lookup(desc.ID); ok {
			desc.ResourceGroupID = group.ID
			desc.PossibleValues = append([]schema.GroupElement(nil), group.Elements...)
		}
	}
}

// classify decides the multi-valued cardinality. Five independent signals
// feed a logical OR; any single one marks the field unbounded.
func (r *Reconciler) classify(item *entry) int {
	controlType := strings.ToLower(item.desc.ControlType)
	switch {
	case strings.Contains(controlType, "grid"):
		return schema.MaxOccursUnbounded
	case item.desc.ControlType == schema.ControlTypeMultiSelect:
		return schema.MaxOccursUnbounded
	case strings.Contains(item.desc.BindingPath, "[]"):
		return schema.MaxOccursUnbounded
	case item.repeating:
		return schema.MaxOccursUnbounded
	case item.declaredMax > 1:
		return schema.MaxOccursUnbounded
	default:
		return 1
	}
}

func selectable(controlType string) bool {
	return controlType == schema.ControlTypeSingleSelect || controlType == schema.ControlTypeMultiSelect
}
