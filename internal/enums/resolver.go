// Package enums resolves resource-group membership from the host's irregular
// two-level lookup table. A top-level key either carries an Elements list
// directly or acts as an intermediate container whose own keys carry the
// groups.
package enums

import (
	"sort"

	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

const elementsKey = "Elements"

// Resolver indexes a ResourceTable and answers group lookups by id. The zero
// value after Index on a nil table is valid and resolves nothing.
type Resolver struct {
	acc *sourcegraph.Accessor

	direct      map[string]schema.ResourceGroup
	directOrder []string
	nested      []nestedContainer
}

type nestedContainer struct {
	key    string
	groups map[string]schema.ResourceGroup
	order  []string
}

// New constructs a Resolver reading through the supplied accessor.
func New(acc *sourcegraph.Accessor) *Resolver {
	if acc == nil {
		acc = sourcegraph.NewAccessor()
	}
	return &Resolver{
		acc:    acc,
		direct: make(map[string]schema.ResourceGroup),
	}
}

// Index registers every group the table carries. Top-level values holding an
// Elements list become groups keyed by their top-level key; any other
// map-shaped value is treated as an intermediate container and each of its
// keys that carries Elements becomes an independent group keyed by the nested
// key. The host map has no stable iteration order, so keys are visited
// sorted to keep registration deterministic.
func (r *Resolver) Index(resourceTable any) {
	table := r.acc.Map(resourceTable)
	if table == nil {
		return
	}

	for _, key := range sortedKeys(table) {
		value := r.acc.Map(table[key])
		if value == nil {
			continue
		}
		if elements, ok := r.elements(value); ok {
			r.direct[key] = r.group(key, value, elements)
			r.directOrder = append(r.directOrder, key)
			continue
		}

		holder := nestedContainer{key: key, groups: make(map[string]schema.ResourceGroup)}
		for _, nestedKey := range sortedKeys(value) {
			nestedValue := r.acc.Map(value[nestedKey])
			if nestedValue == nil {
				continue
			}
			elements, ok := r.elements(nestedValue)
			if !ok {
				continue
			}
			holder.groups[nestedKey] = r.group(nestedKey, nestedValue, elements)
			holder.order = append(holder.order, nestedKey)
		}
		if len(holder.order) > 0 {
			r.nested = append(r.nested, holder)
		}
	}
}

// Lookup resolves a group by id: direct top-level matches win, otherwise the
// nested containers are scanned in order and the first match is returned.
func (r *Resolver) Lookup(id string) (schema.ResourceGroup, bool) {
	if id == "" {
		return schema.ResourceGroup{}, false
	}
	if group, ok := r.direct[id]; ok {
		return group, true
	}
	for _, holder := range r.nested {
		if group, ok := holder.groups[id]; ok {
			return group, true
		}
	}
	return schema.ResourceGroup{}, false
}

// Groups returns every registered group, direct groups first, deduplicated by
// id with the lookup winner kept.
func (r *Resolver) Groups() []schema.ResourceGroup {
	var out []schema.ResourceGroup
	seen := make(map[string]struct{})
	for _, key := range r.directOrder {
		out = append(out, r.direct[key])
		seen[key] = struct{}{}
	}
	for _, holder := range r.nested {
		for _, key := range holder.order {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, holder.groups[key])
		}
	}
	return out
}

func (r *Resolver) elements(value map[string]any) ([]any, bool) {
	raw, ok := value[elementsKey]
	if !ok {
		return nil, false
	}
	list := r.acc.Slice(raw)
	if list == nil {
		return nil, false
	}
	return list, true
}

func (r *Resolver) group(key string, value map[string]any, elements []any) schema.ResourceGroup {
	group := schema.ResourceGroup{
		ID:       key,
		Name:     sourcegraph.String(r.acc.Unwrap(value["Name"])),
		Elements: make([]schema.GroupElement, 0, len(elements)),
	}
	if group.Name == "" {
		group.Name = key
	}
	for i, raw := range elements {
		element := r.acc.Map(raw)
		if element == nil {
			continue
		}
		order := i
		if parsed, ok := sourcegraph.Int(r.acc.Unwrap(element["SortOrder"])); ok {
			order = parsed
		}
		group.Elements = append(group.Elements, schema.GroupElement{
			ID:    sourcegraph.String(r.acc.Unwrap(element["Id"])),
			Value: sourcegraph.String(r.acc.Unwrap(element["Value"])),
			Text:  sourcegraph.String(r.acc.Unwrap(element["Text"])),
			Order: order,
		})
	}
	return group
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
