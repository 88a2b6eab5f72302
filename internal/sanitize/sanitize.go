// Package sanitize strips markup from display strings sourced from the host
// graph. Labels and error messages are externally controlled and may carry
// HTML fragments; descriptors keep only their text content.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Text returns raw with any markup removed and surrounding whitespace
// trimmed.
func Text(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "<") {
		return trimmed
	}
	return strings.TrimSpace(textPolicy().Sanitize(trimmed))
}

func textPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}
