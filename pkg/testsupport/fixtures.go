package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formscan/pkg/schema"
	"github.com/goliatone/go-formscan/pkg/sourcegraph"
)

// LoadGraph reads a snapshot fixture and decodes it into a Graph. Testing
// helpers fail the test on error to keep contract tests concise.
func LoadGraph(t *testing.T, path string) *sourcegraph.Graph {
	t.Helper()

	graph, err := LoadGraphFromPath(path)
	if err != nil {
		t.Fatalf("load graph: %v", err)
	}
	return graph
}

// LoadGraphFromPath returns a Graph without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadGraphFromPath(path string) (*sourcegraph.Graph, error) {
	if path == "" {
		return nil, errors.New("testsupport: graph path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read graph: %w", err)
	}
	doc, err := sourcegraph.NewDocument(sourcegraph.SourceFromFile(path), data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc.Graph()
}

// MustLoadResult loads a JSON golden file into an ExtractionResult.
func MustLoadResult(t *testing.T, path string) schema.ExtractionResult {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load golden: %v", err)
	}
	var out schema.ExtractionResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is
// set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
