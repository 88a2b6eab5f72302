package schema

// ControlType names the handful of control kinds the extractor needs to
// recognise explicitly. Anything else is carried through verbatim.
const (
	ControlTypeTextBox      = "TextBox"
	ControlTypeSingleSelect = "SingleSelect"
	ControlTypeMultiSelect  = "MultiSelect"
	ControlTypeRepeater     = "Repeater"
	ControlTypeDataGrid     = "DataGrid"
)

// MaxOccursUnbounded marks a multi-valued field in Constraints.MaxOccurs.
const MaxOccursUnbounded = -1

// Constraints collects the validation bounds a layout control declares for its
// bound field. Pointer members distinguish "absent" from a literal zero.
type Constraints struct {
	MinLength    *int     `json:"minLength,omitempty"`
	MaxLength    *int     `json:"maxLength,omitempty"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Pattern      string   `json:"pattern,omitempty"`
	DefaultValue any      `json:"defaultValue,omitempty"`
	MinOccurs    int      `json:"minOccurs"`
	MaxOccurs    int      `json:"maxOccurs"`
	Nillable     bool     `json:"nillable,omitempty"`
}

// GroupElement is one selectable value inside a resource group. The same shape
// backs FieldDescriptor.PossibleValues.
type GroupElement struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Text  string `json:"text,omitempty"`
	Order int    `json:"order"`
}

// ResourceGroup is a named, ordered enumeration a field may bind to.
type ResourceGroup struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	Elements []GroupElement `json:"elements"`
}

// FieldDescriptor is the canonical representation of one form field, merged
// from the field dictionary and the layout tree. ID is the binding-path
// identifier and is unique within an ExtractionResult.
type FieldDescriptor struct {
	ID              string         `json:"id"`
	Label           string         `json:"label,omitempty"`
	ControlType     string         `json:"controlType,omitempty"`
	BindingPath     string         `json:"bindingPath,omitempty"`
	Required        bool           `json:"required"`
	Constraints     Constraints    `json:"constraints"`
	ResourceGroupID string         `json:"resourceGroupId,omitempty"`
	PossibleValues  []GroupElement `json:"possibleValues,omitempty"`

	FormID        string `json:"formId,omitempty"`
	PanelID       string `json:"panelId,omitempty"`
	SectionID     string `json:"sectionId,omitempty"`
	PresetValueID string `json:"presetValueId,omitempty"`
}

// Term is the left side of a comparison, taken from the first left term only.
type Term struct {
	FieldID             string `json:"fieldId,omitempty"`
	Path                string `json:"path,omitempty"`
	Literal             any    `json:"literal,omitempty"`
	CalculationOperator *int   `json:"calculationOperator,omitempty"`
}

// RightTerm aggregates every value on the right side of a comparison.
type RightTerm struct {
	Values              []any `json:"values"`
	CalculationOperator *int  `json:"calculationOperator,omitempty"`
}

// Comparison is one leaf condition inside a rule expression.
type Comparison struct {
	Operator *int       `json:"comparisonOperator,omitempty"`
	Left     *Term      `json:"leftTerm,omitempty"`
	Right    *RightTerm `json:"rightTerm,omitempty"`
}

// RuleExpression is the canonical tree form of a validation or visibility
// condition. Depth is bounded by the extractor's recursion guard, not by the
// model itself.
type RuleExpression struct {
	BooleanOperator *int              `json:"booleanOperator,omitempty"`
	Comparisons     []Comparison      `json:"comparisons"`
	ChildGroups     []*RuleExpression `json:"childGroups"`
}

// RuleKind tags a rule as validation or visibility.
type RuleKind string

const (
	RuleKindValidation RuleKind = "validation"
	RuleKindVisibility RuleKind = "visibility"
)

// Rule is one legacy-mode action mapped into canonical form.
type Rule struct {
	ID           string          `json:"id,omitempty"`
	Kind         RuleKind        `json:"kind"`
	FieldID      string          `json:"fieldId,omitempty"`
	BindingPath  string          `json:"bindingPath,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	PointValue   *float64        `json:"pointValue,omitempty"`
	Expression   *RuleExpression `json:"expression,omitempty"`
}

// FormAction is one rich-mode action. Known properties are lifted into struct
// members; everything else the host graph carried lands in Extra with
// reactive cells already unwrapped, so forward-evolving upstream shapes
// survive extraction without unchecked dynamic access.
type FormAction struct {
	ID           string          `json:"id,omitempty"`
	Kind         string          `json:"kind,omitempty"`
	Target       string          `json:"target,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	PointValue   *float64        `json:"pointValue,omitempty"`
	Expression   *RuleExpression `json:"expression,omitempty"`
	Extra        map[string]any  `json:"extra,omitempty"`
}

// Repeater describes a repeating group and the binding ids of its immediate
// children. Children of nested repeaters are not flattened in.
type Repeater struct {
	ID       string   `json:"id,omitempty"`
	Path     string   `json:"path,omitempty"`
	Children []string `json:"children"`
}

// OperatorProfile holds the deduplicated, ascending operator codes found in
// the rich-mode action expressions.
type OperatorProfile struct {
	Comparison  []int `json:"comparison"`
	Boolean     []int `json:"boolean"`
	Calculation []int `json:"calculation"`
}
