// Package sanitize scrubs user-supplied free-text fields before they are
// stored or echoed back. Uses bluemonday's strict policy to strip all HTML
// (script tags, event handlers, javascript: URLs). Registration names and
// problem metadata forwarded to the AI prompt pass through here.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton strict bluemonday policy. Initialized once via
// sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// StrictPolicy strips every tag and attribute. None of our text
		// fields legitimately contain markup.
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips all HTML from a user-supplied string and trims surrounding
// whitespace. The result is safe to store and to echo back in JSON responses
// rendered by the React client.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getPolicy().Sanitize(input))
}
