package sourcegraph

import (
	"errors"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source identifies where a graph snapshot originated so fixtures and host
// captures can be traced back without leaking loader details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates snapshot origins.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindInline SourceKind = "inline"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a snapshot file on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type inlineSource struct {
	name string
}

func (s inlineSource) Location() string { return s.name }
func (s inlineSource) Kind() SourceKind { return SourceKindInline }

// SourceInline labels a snapshot supplied directly as bytes.
func SourceInline(name string) Source {
	return inlineSource{name: name}
}

// Document wraps a captured graph snapshot and its origin. The engine itself
// performs no I/O; hosts and tests hand snapshots in wholesale.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("sourcegraph: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("sourcegraph: raw snapshot is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// Source returns the origin metadata for the snapshot.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// snapshot mirrors the four root containers as serialised by host captures.
type snapshot struct {
	Layouts         any `yaml:"LayoutCollection" json:"LayoutCollection"`
	FieldDictionary any `yaml:"FieldDictionary" json:"FieldDictionary"`
	ResourceTable   any `yaml:"ResourceTable" json:"ResourceTable"`
	ActionTable     any `yaml:"ActionTable" json:"ActionTable"`
}

// Graph decodes the snapshot payload into a Graph view. YAML is a superset of
// JSON, so a single decoder covers both capture formats.
func (d Document) Graph() (*Graph, error) {
	var snap snapshot
	if err := yaml.Unmarshal(d.raw, &snap); err != nil {
		return nil, fmt.Errorf("sourcegraph: decode snapshot: %w", err)
	}
	return &Graph{
		Layouts:         snap.Layouts,
		FieldDictionary: snap.FieldDictionary,
		ResourceTable:   snap.ResourceTable,
		ActionTable:     snap.ActionTable,
	}, nil
}
