// Package operators builds the deduplicated, sorted operator-usage profile of
// the rich-mode action expressions.
package operators

import (
	"sort"

	"github.com/goliatone/go-formscan/pkg/schema"
)

// Analyze flattens every per-path action list and depth-first visits each
// expression tree, collecting boolean operators at every group and
// comparison plus calculation operators (both left- and right-term) at every
// leaf. It returns nil when formActions itself is absent, distinguishing
// "nothing to analyze" from "analyzed, found none". No depth cap is applied;
// normalized trees are already bounded.
func Analyze(formActions map[string][]schema.FormAction) *schema.OperatorProfile {
	if formActions == nil {
		return nil
	}

	comparison := make(map[int]struct{})
	boolean := make(map[int]struct{})
	calculation := make(map[int]struct{})

	var visit func(group *schema.RuleExpression)
	visit = func(group *schema.RuleExpression) {
		if group == nil {
			return
		}
		if group.BooleanOperator != nil {
			boolean[*group.BooleanOperator] = struct{}{}
		}
		for _, cmp := range group.Comparisons {
			if cmp.Operator != nil {
				comparison[*cmp.Operator] = struct{}{}
			}
			if cmp.Left != nil && cmp.Left.CalculationOperator != nil {
				calculation[*cmp.Left.CalculationOperator] = struct{}{}
			}
			if cmp.Right != nil && cmp.Right.CalculationOperator != nil {
				calculation[*cmp.Right.CalculationOperator] = struct{}{}
			}
		}
		for _, child := range group.ChildGroups {
			visit(child)
		}
	}

	for _, actions := range formActions {
		for _, action := range actions {
			visit(action.Expression)
		}
	}

	return &schema.OperatorProfile{
		Comparison:  ascending(comparison),
		Boolean:     ascending(boolean),
		Calculation: ascending(calculation),
	}
}

func ascending(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Ints(out)
	return out
}
