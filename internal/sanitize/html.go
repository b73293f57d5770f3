package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy removes all HTML tags and attributes. Entry descriptions
// are free text that ends up inside rendered summary emails, so they
// are reduced to plain text before templating.
var strictPolicy = bluemonday.StrictPolicy()

// Text strips all HTML tags and returns plain text.
func Text(input string) string {
	return strictPolicy.Sanitize(input)
}
