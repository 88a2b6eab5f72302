package schema

import "sort"

// Diagnostic records a non-fatal problem observed while extracting. Stages
// attach diagnostics instead of failing the whole run when only their own
// output is affected.
type Diagnostic struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Summary tallies the extracted collections so change reports can be built
// without re-walking the result.
type Summary struct {
	Fields          int `json:"fields"`
	ResourceGroups  int `json:"resourceGroups"`
	ValidationRules int `json:"validationRules"`
	VisibilityRules int `json:"visibilityRules"`
	Repeaters       int `json:"repeaters"`
	FormActions     int `json:"formActions"`
}

// ExtractionResult aggregates everything one extraction produced. Instances
// are created fresh per run, own all of their data, and never alias back into
// the source graph.
type ExtractionResult struct {
	Fields          []FieldDescriptor       `json:"fields"`
	ResourceGroups  []ResourceGroup         `json:"resourceGroups"`
	ValidationRules []Rule                  `json:"validationRules"`
	VisibilityRules []Rule                  `json:"visibilityRules"`
	FormActions     map[string][]FormAction `json:"formActions,omitempty"`
	Repeaters       []Repeater              `json:"repeaters"`
	Operators       *OperatorProfile        `json:"operators,omitempty"`
	Summary         Summary                 `json:"summary"`
	Diagnostics     []Diagnostic            `json:"diagnostics,omitempty"`
}

// SortFields orders the field collection by id. FieldReconciler output is
// unordered; callers must sort before any order-sensitive operation.
func (r *ExtractionResult) SortFields() {
	sort.Slice(r.Fields, func(i, j int) bool { return r.Fields[i].ID < r.Fields[j].ID })
}

// Field looks up a descriptor by id.
func (r *ExtractionResult) Field(id string) (FieldDescriptor, bool) {
	for _, field := range r.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// Tally recomputes the summary counts from the current collections.
func (r *ExtractionResult) Tally() {
	formActions := 0
	for _, actions := range r.FormActions {
		formActions += len(actions)
	}
	r.Summary = Summary{
		Fields:          len(r.Fields),
		ResourceGroups:  len(r.ResourceGroups),
		ValidationRules: len(r.ValidationRules),
		VisibilityRules: len(r.VisibilityRules),
		Repeaters:       len(r.Repeaters),
		FormActions:     formActions,
	}
}
