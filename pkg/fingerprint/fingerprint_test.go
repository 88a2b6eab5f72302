package fingerprint

import (
	"regexp"
	"testing"

	"github.com/goliatone/go-formscan/pkg/schema"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]+$`)

func sampleResult() *schema.ExtractionResult {
	return &schema.ExtractionResult{
		Fields: []schema.FieldDescriptor{
			{ID: "F2", BindingPath: "/b", Label: "Second"},
			{ID: "F1", BindingPath: "/a", Label: "First"},
		},
		ResourceGroups: []schema.ResourceGroup{
			{ID: "G2", Elements: []schema.GroupElement{{ID: "1"}}},
			{ID: "G1", Elements: []schema.GroupElement{{ID: "1"}, {ID: "2"}}},
		},
	}
}

func permuted(result *schema.ExtractionResult) *schema.ExtractionResult {
	out := &schema.ExtractionResult{
		Fields:         append([]schema.FieldDescriptor(nil), result.Fields...),
		ResourceGroups: append([]schema.ResourceGroup(nil), result.ResourceGroups...),
	}
	for i, j := 0, len(out.Fields)-1; i < j; i, j = i+1, j-1 {
		out.Fields[i], out.Fields[j] = out.Fields[j], out.Fields[i]
	}
	for i, j := 0, len(out.ResourceGroups)-1; i < j; i, j = i+1, j-1 {
		out.ResourceGroups[i], out.ResourceGroups[j] = out.ResourceGroups[j], out.ResourceGroups[i]
	}
	return out
}

func TestPrimaryIsIdempotent(t *testing.T) {
	result := sampleResult()

	first, err := Primary(result)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	second, err := Primary(result)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	if first != second {
		t.Fatalf("digests differ for unchanged result: %q vs %q", first, second)
	}
	if len(first) != 64 || !hexPattern.MatchString(first) {
		t.Fatalf("expected lowercase hex sha-256, got %q", first)
	}
}

func TestPrimaryIsOrderIndependent(t *testing.T) {
	result := sampleResult()

	base, err := Primary(result)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	shuffled, err := Primary(permuted(result))
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	if base != shuffled {
		t.Fatalf("digest changed with discovery order: %q vs %q", base, shuffled)
	}
}

func TestPrimaryTracksStructuralChanges(t *testing.T) {
	result := sampleResult()
	base, err := Primary(result)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}

	changed := sampleResult()
	changed.Fields[0].BindingPath = "/moved"
	moved, err := Primary(changed)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	if base == moved {
		t.Fatalf("expected binding path change to change the digest")
	}
}

func TestPrimaryIgnoresMetadataChurn(t *testing.T) {
	result := sampleResult()
	base, err := Primary(result)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}

	relabeled := sampleResult()
	relabeled.Fields[0].Label = "renamed"
	relabeled.Fields[0].Required = true
	got, err := Primary(relabeled)
	if err != nil {
		t.Fatalf("primary: %v", err)
	}
	if base != got {
		t.Fatalf("expected labels and flags outside the projection to be ignored")
	}
}

func TestPrimaryDoesNotMutateResult(t *testing.T) {
	result := sampleResult()
	if _, err := Primary(result); err != nil {
		t.Fatalf("primary: %v", err)
	}
	if result.Fields[0].ID != "F2" {
		t.Fatalf("expected input untouched, got fields %v", result.Fields)
	}
}

func TestQuickIsStableAgainstBindingChurn(t *testing.T) {
	result := sampleResult()
	base, err := Quick(result)
	if err != nil {
		t.Fatalf("quick: %v", err)
	}

	rebound := sampleResult()
	rebound.Fields[0].BindingPath = "/elsewhere"
	got, err := Quick(rebound)
	if err != nil {
		t.Fatalf("quick: %v", err)
	}
	if base != got {
		t.Fatalf("expected quick digest stable against binding churn")
	}
	if len(base) != 16 || !hexPattern.MatchString(base) {
		t.Fatalf("expected 16 lowercase hex chars, got %q", base)
	}
}

func TestQuickTracksIDChanges(t *testing.T) {
	result := sampleResult()
	base, err := Quick(result)
	if err != nil {
		t.Fatalf("quick: %v", err)
	}

	renamed := sampleResult()
	renamed.Fields[0].ID = "F9"
	got, err := Quick(renamed)
	if err != nil {
		t.Fatalf("quick: %v", err)
	}
	if base == got {
		t.Fatalf("expected id change to change the quick digest")
	}
}

func TestNilResultErrors(t *testing.T) {
	if _, err := Primary(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := Quick(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
}
