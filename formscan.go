package formscan

import (
	"context"

	"github.com/goliatone/go-formscan/pkg/extractor"
	"github.com/goliatone/go-formscan/pkg/fingerprint"
	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

// Graph is the read-only source graph view; alias exported via the root
// package for convenience.
type Graph = sourcegraph.Graph

// ExtractionResult aggregates everything one extraction produced.
type ExtractionResult = schema.ExtractionResult

// FieldDescriptor is the canonical representation of one form field.
type FieldDescriptor = schema.FieldDescriptor

// ResourceGroup is a named, ordered enumeration a field may bind to.
type ResourceGroup = schema.ResourceGroup

// NewEngine exposes the extraction engine constructor from the top-level
// module.
func NewEngine(options ...extractor.Option) *extractor.Engine {
	return extractor.New(options...)
}

// Extract runs a full extraction over the supplied source graph. It is the
// simplest entry point for callers that just want the canonical schema.
func Extract(ctx context.Context, graph *sourcegraph.Graph, options ...extractor.Option) (*schema.ExtractionResult, error) {
	return extractor.New(options...).Extract(ctx, graph)
}

// ExtractDocument decodes a captured graph snapshot and extracts it,
// bypassing the host integration layer for fixtures and offline captures.
func ExtractDocument(ctx context.Context, doc sourcegraph.Document, options ...extractor.Option) (*schema.ExtractionResult, error) {
	graph, err := doc.Graph()
	if err != nil {
		return nil, err
	}
	return extractor.New(options...).Extract(ctx, graph)
}

// PrimaryFingerprint computes the canonical change-detection digest of a
// result.
func PrimaryFingerprint(result *schema.ExtractionResult) (string, error) {
	return fingerprint.Primary(result)
}

// QuickFingerprint computes the coarse digest used when debugging primary
// mismatches.
func QuickFingerprint(result *schema.ExtractionResult) (string, error) {
	return fingerprint.Quick(result)
}
