package sourcegraph

import "testing"

func TestNewDocumentValidatesInputs(t *testing.T) {
	if _, err := NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceInline("test"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestDocumentDecodesJSON(t *testing.T) {
	raw := []byte(`{
		"FieldDictionary": [{"bpID": "F1", "type": "TextBox"}],
		"ResourceTable": {"G1": {"Elements": []}}
	}`)
	doc, err := NewDocument(SourceInline("json"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	graph, err := doc.Graph()
	if err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if graph.FieldDictionary == nil {
		t.Fatalf("expected field dictionary decoded")
	}
	if graph.ResourceTable == nil {
		t.Fatalf("expected resource table decoded")
	}
	if graph.Layouts != nil || graph.ActionTable != nil {
		t.Fatalf("expected absent roots to stay nil")
	}
}

func TestDocumentDecodesYAML(t *testing.T) {
	raw := []byte("FieldDictionary:\n  - bpID: F1\n    type: TextBox\nActionTable:\n  Actions: []\n")
	doc, err := NewDocument(SourceInline("yaml"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	graph, err := doc.Graph()
	if err != nil {
		t.Fatalf("decode graph: %v", err)
	}
	if graph.FieldDictionary == nil {
		t.Fatalf("expected field dictionary decoded")
	}
	if graph.ActionTable == nil {
		t.Fatalf("expected action table decoded")
	}
}

func TestDocumentRawIsDefensive(t *testing.T) {
	raw := []byte(`{"FieldDictionary": []}`)
	doc, err := NewDocument(SourceFromFile("capture.json"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	clone := doc.Raw()
	clone[0] = 'x'
	if doc.Raw()[0] != '{' {
		t.Fatalf("expected internal payload untouched")
	}
	if doc.Location() != "capture.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	if doc.Source().Kind() != SourceKindFile {
		t.Fatalf("unexpected source kind %q", doc.Source().Kind())
	}
}
