// Package fingerprint derives deterministic digests over a canonical
// projection of an extraction result, used for change detection. Identical
// semantic schemas hash identically regardless of the order anything was
// discovered in.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/goliatone/go-formscan/pkg/schema"
)

// projection is the canonical subset serialized for the primary digest. Field
// order is fixed by the struct; both lists are sorted by id before
// serialization.
type projection struct {
	Fields         []fieldEntry `json:"fields"`
	ResourceGroups []groupEntry `json:"resourceGroups"`
}

type fieldEntry struct {
	ID          string `json:"id"`
	BindingPath string `json:"bindingPath"`
}

type groupEntry struct {
	ID           string `json:"id"`
	ElementCount int    `json:"elementCount"`
}

// Primary serializes the canonical projection with a fixed ordering and
// returns the lowercase hex SHA-256 of the UTF-8 bytes. Upstream iteration
// order must never change the digest; that determinism is the contract this
// package exists for.
func Primary(result *schema.ExtractionResult) (string, error) {
	if result == nil {
		return "", errors.New("fingerprint: result is required")
	}

	data, err := json.Marshal(project(result))
	if err != nil {
		return "", fmt.Errorf("fingerprint: serialize projection: %w", err)
	}
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}

// Quick computes a lighter digest over the id lists and coarse counts only.
// It ignores constraints, labels, and bindings, so it stays stable against
// metadata churn; useful when debugging primary-digest mismatches.
func Quick(result *schema.ExtractionResult) (string, error) {
	if result == nil {
		return "", errors.New("fingerprint: result is required")
	}

	fieldIDs := make([]string, 0, len(result.Fields))
	for _, field := range result.Fields {
		fieldIDs = append(fieldIDs, field.ID)
	}
	sort.Strings(fieldIDs)

	groupIDs := make([]string, 0, len(result.ResourceGroups))
	for _, group := range result.ResourceGroups {
		groupIDs = append(groupIDs, group.ID)
	}
	sort.Strings(groupIDs)

	var b strings.Builder
	b.WriteString("fields:")
	b.WriteString(strings.Join(fieldIDs, ","))
	b.WriteString(";groups:")
	b.WriteString(strings.Join(groupIDs, ","))
	fmt.Fprintf(&b, ";counts:%d,%d,%d,%d",
		len(result.Fields),
		len(result.ResourceGroups),
		len(result.ValidationRules),
		len(result.VisibilityRules),
	)

	return fmt.Sprintf("%016x", xxh3.HashString(b.String())), nil
}

func project(result *schema.ExtractionResult) projection {
	out := projection{
		Fields:         make([]fieldEntry, 0, len(result.Fields)),
		ResourceGroups: make([]groupEntry, 0, len(result.ResourceGroups)),
	}
	for _, field := range result.Fields {
		out.Fields = append(out.Fields, fieldEntry{ID: field.ID, BindingPath: field.BindingPath})
	}
	for _, group := range result.ResourceGroups {
		out.ResourceGroups = append(out.ResourceGroups, groupEntry{ID: group.ID, ElementCount: len(group.Elements)})
	}
	sort.Slice(out.Fields, func(i, j int) bool { return out.Fields[i].ID < out.Fields[j].ID })
	sort.Slice(out.ResourceGroups, func(i, j int) bool { return out.ResourceGroups[i].ID < out.ResourceGroups[j].ID })
	return out
}
