// Package extractor sequences the extraction stages over a source graph and
// assembles the final result. Each stage's failure is isolated: fields and
// resource groups already computed are never suppressed by a later rule or
// operator failure.
package extractor

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formscan/internal/enums"
	"github.com/goliatone/go-formscan/internal/fields"
	"github.com/goliatone/go-formscan/internal/operators"
	"github.com/goliatone/go-formscan/internal/rules"
	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

// Option customises the engine configuration.
type Option func(*Engine)

// WithAccessor injects a host-specific graph accessor, typically one carrying
// a reactivity-framework cell adapter.
func WithAccessor(acc *sourcegraph.Accessor) Option {
	return func(e *Engine) {
		e.acc = acc
	}
}

// WithMaxDepth overrides the recursion ceiling applied to layout and
// expression traversal.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// Engine runs extractions. It holds configuration only; no state is shared
// across invocations and every call returns an independently owned result.
type Engine struct {
	acc      *sourcegraph.Accessor
	maxDepth int
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.acc == nil {
		e.acc = sourcegraph.NewAccessor()
	}
	if e.maxDepth <= 0 {
		e.maxDepth = sourcegraph.DefaultMaxDepth
	}
	return e
}

// Extract runs the full pipeline: field reconciliation, both rule extraction
// modes, repeater discovery, operator analysis, and the summary tally.
// It fails hard only when no root container can be established; anything less
// degrades the corresponding output and records a diagnostic.
func (e *Engine) Extract(ctx context.Context, graph *sourcegraph.Graph) (*schema.ExtractionResult, error) {
	if ctx == nil {
		return nil, errors.New("extractor: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if graph.Empty() {
		return nil, &FatalError{Message: "no root container present in source graph"}
	}

	result := &schema.ExtractionResult{
		Fields:          []schema.FieldDescriptor{},
		ResourceGroups:  []schema.ResourceGroup{},
		ValidationRules: []schema.Rule{},
		VisibilityRules: []schema.Rule{},
		Repeaters:       []schema.Repeater{},
	}

	e.checkShapes(graph, result)

	resolver := enums.New(e.acc)
	e.runStage(result, "enums", func() {
		resolver.Index(graph.ResourceTable)
		result.ResourceGroups = resolver.Groups()
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.runStage(result, "fields", func() {
		reconciler := fields.New(e.acc, resolver, e.maxDepth)
		result.Fields = reconciler.Extract(graph.FieldDictionary, graph.Layouts)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalizer := rules.New(e.acc, e.maxDepth)
	e.runStage(result, "rules", func() {
		result.ValidationRules, result.VisibilityRules = normalizer.Legacy(graph.ActionTable)
		result.FormActions = normalizer.Rich(graph.ActionTable)
	})
	e.runStage(result, "repeaters", func() {
		result.Repeaters = normalizer.Repeaters(graph.Layouts)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.runStage(result, "operators", func() {
		result.Operators = operators.Analyze(result.FormActions)
	})

	result.Tally()
	return result, nil
}

// runStage isolates one stage. The source graph is externally owned and wild,
// so a stage panic is recovered into a diagnostic and the slot keeps the
// empty value it was initialised with.
func (e *Engine) runStage(result *schema.ExtractionResult, stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			result.Diagnostics = append(result.Diagnostics, schema.Diagnostic{
				Stage:   stage,
				Message: fmt.Sprintf("stage panicked: %v", r),
			})
		}
	}()
	fn()
}

// checkShapes records a diagnostic for every root container that is present
// but not of a shape any stage can read. The stages themselves degrade
// silently; the diagnostics give callers the reason.
func (e *Engine) checkShapes(graph *sourcegraph.Graph, result *schema.ExtractionResult) {
	note := func(stage, message string) {
		result.Diagnostics = append(result.Diagnostics, schema.Diagnostic{Stage: stage, Message: message})
	}

	if graph.FieldDictionary != nil && e.acc.Slice(graph.FieldDictionary) == nil {
		note("fields", "field dictionary is not a list")
	}
	if graph.ResourceTable != nil && e.acc.Map(graph.ResourceTable) == nil {
		note("enums", "resource table is not a map")
	}
	if graph.Layouts != nil {
		unwrapped := e.acc.Unwrap(graph.Layouts)
		if e.acc.Map(unwrapped) == nil && e.acc.Slice(unwrapped) == nil {
			note("fields", "layout collection is neither an object nor a list")
		}
	}
	if graph.ActionTable != nil {
		unwrapped := e.acc.Unwrap(graph.ActionTable)
		if e.acc.Map(unwrapped) == nil && e.acc.Slice(unwrapped) == nil {
			note("rules", "action table is neither an object nor a list")
		}
	}
}
