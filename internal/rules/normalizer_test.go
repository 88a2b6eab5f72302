package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formscan/pkg/schema"
)

func TestLegacyMapsTaggedActions(t *testing.T) {
	actionTable := []any{
		map[string]any{
			"ID":           "v-1",
			"Type":         "Validation",
			"FieldID":      "F1",
			"BindingPath":  "/a/b",
			"ErrorMessage": "value required",
			"PointValue":   2.5,
			"Expression": map[string]any{
				"BooleanOperator": 0,
				"Comparisons":     []any{},
			},
		},
		map[string]any{
			"ID":      "s-1",
			"Type":    "Visibility",
			"FieldID": "F2",
		},
		map[string]any{
			"ID":   "x-1",
			"Type": "SomethingElse",
		},
	}

	normalizer := New(nil, 0)
	validation, visibility := normalizer.Legacy(actionTable)

	require.Len(t, validation, 1)
	require.Len(t, visibility, 1)

	rule := validation[0]
	assert.Equal(t, schema.RuleKindValidation, rule.Kind)
	assert.Equal(t, "v-1", rule.ID)
	assert.Equal(t, "F1", rule.FieldID)
	assert.Equal(t, "/a/b", rule.BindingPath)
	assert.Equal(t, "value required", rule.ErrorMessage)
	require.NotNil(t, rule.PointValue)
	assert.Equal(t, 2.5, *rule.PointValue)
	require.NotNil(t, rule.Expression)

	shown := visibility[0]
	assert.Equal(t, schema.RuleKindVisibility, shown.Kind)
	assert.Empty(t, shown.ErrorMessage)
	assert.Nil(t, shown.PointValue)
	assert.Nil(t, shown.Expression)
}

func TestLegacyAcceptsContainerShape(t *testing.T) {
	actionTable := map[string]any{
		"Actions": []any{
			map[string]any{"ID": "v-1", "Type": "Validation"},
		},
	}

	validation, visibility := New(nil, 0).Legacy(actionTable)
	require.Len(t, validation, 1)
	assert.Empty(t, visibility)
}

func TestExpressionToleratesPartialShapes(t *testing.T) {
	normalizer := New(nil, 0)

	assert.Nil(t, normalizer.Expression(nil), "absent group yields nil")
	assert.Nil(t, normalizer.Expression("not a group"))

	expr := normalizer.Expression(map[string]any{})
	require.NotNil(t, expr)
	assert.Nil(t, expr.BooleanOperator)
	assert.NotNil(t, expr.Comparisons, "absent list yields an empty list")
	assert.Len(t, expr.Comparisons, 0)
	assert.NotNil(t, expr.ChildGroups)
	assert.Len(t, expr.ChildGroups, 0)
}

func TestExpressionUsesFirstLeftTermOnly(t *testing.T) {
	expr := New(nil, 0).Expression(map[string]any{
		"BooleanOperator": 1,
		"Comparisons": []any{
			map[string]any{
				"Operator": 3,
				"LeftTerms": []any{
					map[string]any{"FieldID": "F1", "Path": "/f1", "Value": "first"},
					map[string]any{"FieldID": "F2", "Path": "/f2", "Value": "ignored"},
				},
				"RightTerms": []any{
					map[string]any{"Value": "a"},
					map[string]any{"Value": "b", "CalculationOperator": 7},
				},
			},
		},
	})

	require.NotNil(t, expr)
	require.NotNil(t, expr.BooleanOperator)
	assert.Equal(t, 1, *expr.BooleanOperator)
	require.Len(t, expr.Comparisons, 1)

	cmp := expr.Comparisons[0]
	require.NotNil(t, cmp.Operator)
	assert.Equal(t, 3, *cmp.Operator)
	require.NotNil(t, cmp.Left)
	assert.Equal(t, "F1", cmp.Left.FieldID)
	assert.Equal(t, "first", cmp.Left.Literal)
	require.NotNil(t, cmp.Right)
	assert.Equal(t, []any{"a", "b"}, cmp.Right.Values)
	require.NotNil(t, cmp.Right.CalculationOperator)
	assert.Equal(t, 7, *cmp.Right.CalculationOperator)
}

func TestExpressionDepthIsBounded(t *testing.T) {
	// Build a chain deeper than the guard.
	deepest := map[string]any{"BooleanOperator": 0}
	root := deepest
	for i := 0; i < 30; i++ {
		root = map[string]any{"ChildGroups": []any{root}}
	}

	expr := New(nil, 8).Expression(root)
	require.NotNil(t, expr)

	depth := 0
	for node := expr; len(node.ChildGroups) > 0; node = node.ChildGroups[0] {
		depth++
	}
	assert.LessOrEqual(t, depth, 8)
}

func TestRichModeLiftsKnownAndKeepsExtras(t *testing.T) {
	actionTable := map[string]any{
		"FormActions": map[string]any{
			"/section/a": []any{
				map[string]any{
					"ID":           "r-1",
					"Kind":         "Validate",
					"Target":       "/a",
					"ErrorMessage": "bad",
					"PointValue":   1,
					"Expression":   map[string]any{},
					"Severity":     func() any { return "warning" },
					"CustomFlag":   true,
				},
			},
		},
	}

	actions := New(nil, 0).Rich(actionTable)
	require.NotNil(t, actions)
	require.Len(t, actions["/section/a"], 1)

	action := actions["/section/a"][0]
	assert.Equal(t, "r-1", action.ID)
	assert.Equal(t, "Validate", action.Kind)
	assert.Equal(t, "/a", action.Target)
	require.NotNil(t, action.Expression)
	assert.Equal(t, "warning", action.Extra["Severity"], "cells are unwrapped before landing in Extra")
	assert.Equal(t, true, action.Extra["CustomFlag"])
	assert.NotContains(t, action.Extra, "ID")
}

func TestRichModeAbsentTableIsNil(t *testing.T) {
	assert.Nil(t, New(nil, 0).Rich(nil))
	assert.Nil(t, New(nil, 0).Rich(map[string]any{"Actions": []any{}}))
}

func TestRepeaterDiscovery(t *testing.T) {
	layouts := map[string]any{
		"Panels": []any{
			map[string]any{
				"Controls": []any{
					map[string]any{
						"BpID":        "household",
						"BindingPath": "/household",
						"IsRepeating": true,
						"Controls": []any{
							map[string]any{"BpID": "member-name"},
							map[string]any{"BpID": "member-age"},
							map[string]any{
								"BpID":        "pets",
								"ControlType": "Repeater",
								"Controls": []any{
									map[string]any{"BpID": "pet-name"},
								},
							},
						},
					},
				},
			},
		},
	}

	repeaters := New(nil, 0).Repeaters(layouts)
	require.Len(t, repeaters, 2)

	household := repeaters[0]
	assert.Equal(t, "household", household.ID)
	assert.Equal(t, "/household", household.Path)
	assert.Equal(t, []string{"member-name", "member-age", "pets"}, household.Children,
		"only immediate children are recorded")

	pets := repeaters[1]
	assert.Equal(t, "pets", pets.ID)
	assert.Equal(t, []string{"pet-name"}, pets.Children)
}

func TestRepeatersAbsentLayouts(t *testing.T) {
	assert.Empty(t, New(nil, 0).Repeaters(nil))
}
