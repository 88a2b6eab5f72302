// Package rules converts the host's heterogeneous rule and action records
// into canonical expression trees. Two extraction modes coexist: the legacy
// flat action list and the rich per-path form-action map. Both feed the same
// RuleExpression shape.
package rules

import (
	"github.com/goliatone/go-formscan/internal/sanitize"
	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

const (
	legacyActionsKey = "Actions"
	richActionsKey   = "FormActions"

	legacyTypeValidation = "Validation"
	legacyTypeVisibility = "Visibility"
)

// Normalizer maps raw rule records into canonical form. Every level tolerates
// missing or partial shapes: an absent group yields nil, an absent list an
// empty list.
type Normalizer struct {
	acc      *sourcegraph.Accessor
	maxDepth int
}

// New constructs a Normalizer reading through the supplied accessor.
func New(acc *sourcegraph.Accessor, maxDepth int) *Normalizer {
	if acc == nil {
		acc = sourcegraph.NewAccessor()
	}
	if maxDepth <= 0 {
		maxDepth = sourcegraph.DefaultMaxDepth
	}
	return &Normalizer{acc: acc, maxDepth: maxDepth}
}

// Legacy maps the flat action list into tagged rules. The ActionTable root
// may be the list itself or a container holding it under "Actions". Actions
// without a recognised type tag are skipped.
func (n *Normalizer) Legacy(actionTable any) (validation, visibility []schema.Rule) {
	list := n.legacyList(actionTable)
	for _, raw := range list {
		action := n.acc.Map(raw)
		if action == nil {
			continue
		}
		rule := schema.Rule{
			ID:          sourcegraph.String(n.acc.Unwrap(action["ID"])),
			FieldID:     sourcegraph.String(n.acc.Unwrap(action["FieldID"])),
			BindingPath: sourcegraph.String(n.acc.Unwrap(action["BindingPath"])),
			Expression:  n.Expression(action["Expression"]),
		}
		switch sourcegraph.String(n.acc.Unwrap(action["Type"])) {
		case legacyTypeValidation:
			rule.Kind = schema.RuleKindValidation
			rule.ErrorMessage = sanitize.Text(sourcegraph.String(n.acc.Unwrap(action["ErrorMessage"])))
			if points, ok := sourcegraph.Float(n.acc.Unwrap(action["PointValue"])); ok {
				rule.PointValue = &points
			}
			validation = append(validation, rule)
		case legacyTypeVisibility:
			rule.Kind = schema.RuleKindVisibility
			visibility = append(visibility, rule)
		}
	}
	return validation, visibility
}

func (n *Normalizer) legacyList(actionTable any) []any {
	unwrapped := n.acc.Unwrap(actionTable)
	if list, ok := unwrapped.([]any); ok {
		return list
	}
	if m, ok := unwrapped.(map[string]any); ok {
		return n.acc.Slice(m[legacyActionsKey])
	}
	return nil
}

// Rich maps the per-path form-action table. Known properties land on the
// FormAction struct; everything else the upstream shape carries is kept in
// Extra with cells unwrapped, so forward-evolving hosts keep round-tripping.
// Returns nil when the table carries no rich actions at all.
func (n *Normalizer) Rich(actionTable any) map[string][]schema.FormAction {
	container := n.acc.Map(actionTable)
	if container == nil {
		return nil
	}
	byPath := n.acc.Map(container[richActionsKey])
	if byPath == nil {
		return nil
	}

	out := make(map[string][]schema.FormAction, len(byPath))
	for path, raw := range byPath {
		actions := n.acc.Slice(raw)
		mapped := make([]schema.FormAction, 0, len(actions))
		for _, rawAction := range actions {
			action := n.acc.Map(rawAction)
			if action == nil {
				continue
			}
			mapped = append(mapped, n.formAction(action))
		}
		out[path] = mapped
	}
	return out
}

func (n *Normalizer) formAction(action map[string]any) schema.FormAction {
	out := schema.FormAction{
		ID:           sourcegraph.String(n.acc.Unwrap(action["ID"])),
		Kind:         sourcegraph.String(n.acc.Unwrap(action["Kind"])),
		Target:       sourcegraph.String(n.acc.Unwrap(action["Target"])),
		ErrorMessage: sanitize.Text(sourcegraph.String(n.acc.Unwrap(action["ErrorMessage"]))),
		Expression:   n.Expression(action["Expression"]),
	}
	if points, ok := sourcegraph.Float(n.acc.Unwrap(action["PointValue"])); ok {
		out.PointValue = &points
	}
	for key, value := range action {
		switch key {
		case "ID", "Kind", "Target", "ErrorMessage", "PointValue", "Expression":
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[key] = n.acc.Unwrap(value)
	}
	return out
}

// Expression recursively maps a raw expression group into the canonical
// {booleanOperator, comparisons, childGroups} shape. An absent group yields
// nil; absent lists yield empty lists. Depth beyond the guard abandons the
// branch.
func (n *Normalizer) Expression(raw any) *schema.RuleExpression {
	return n.expression(raw, 0)
}

func (n *Normalizer) expression(raw any, depth int) *schema.RuleExpression {
	if depth > n.maxDepth {
		return nil
	}
	group := n.acc.Map(raw)
	if group == nil {
		return nil
	}

	out := &schema.RuleExpression{
		BooleanOperator: n.intPtr(group["BooleanOperator"]),
		Comparisons:     []schema.Comparison{},
		ChildGroups:     []*schema.RuleExpression{},
	}

	for _, rawComparison := range n.acc.Slice(group["Comparisons"]) {
		comparison := n.acc.Map(rawComparison)
		if comparison == nil {
			continue
		}
		out.Comparisons = append(out.Comparisons, n.comparison(comparison))
	}

	for _, rawChild := range n.acc.Slice(group["ChildGroups"]) {
		child := n.expression(rawChild, depth+1)
		if child == nil {
			continue
		}
		out.ChildGroups = append(out.ChildGroups, child)
	}
	return out
}

// comparison derives the left term from only the first element of the left
// term group; multi-term left sides are not supported upstream. The right
// term aggregates every right-group value plus an optional calculation
// operator.
func (n *Normalizer) comparison(comparison map[string]any) schema.Comparison {
	out := schema.Comparison{
		Operator: n.intPtr(comparison["Operator"]),
	}

	if leftTerms := n.acc.Slice(comparison["LeftTerms"]); len(leftTerms) > 0 {
		if term := n.acc.Map(leftTerms[0]); term != nil {
			out.Left = &schema.Term{
				FieldID:             sourcegraph.String(n.acc.Unwrap(term["FieldID"])),
				Path:                sourcegraph.String(n.acc.Unwrap(term["Path"])),
				Literal:             n.acc.Unwrap(term["Value"]),
				CalculationOperator: n.intPtr(term["CalculationOperator"]),
			}
		}
	}

	rightTerms := n.acc.Slice(comparison["RightTerms"])
	if rightTerms != nil {
		right := &schema.RightTerm{Values: []any{}}
		for _, rawTerm := range rightTerms {
			term := n.acc.Map(rawTerm)
			if term == nil {
				continue
			}
			right.Values = append(right.Values, n.acc.Unwrap(term["Value"]))
			if right.CalculationOperator == nil {
				right.CalculationOperator = n.intPtr(term["CalculationOperator"])
			}
		}
		out.Right = right
	}
	return out
}

func (n *Normalizer) intPtr(raw any) *int {
	value, ok := sourcegraph.Int(n.acc.Unwrap(raw))
	if !ok {
		return nil
	}
	return &value
}
