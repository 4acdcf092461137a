package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Formatting that survives common mail clients. No scripts, forms, media or
		// event handlers; links must use http(s) or mailto.
		emailPolicy = bluemonday.NewPolicy()
		emailPolicy.AllowStandardURLs()
		emailPolicy.AllowURLSchemes("http", "https", "mailto")
		emailPolicy.AllowElements(
			"p", "br", "hr", "div", "span",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i", "u", "small",
			"ul", "ol", "li", "blockquote",
			"table", "thead", "tbody", "tr", "td", "th",
		)
		emailPolicy.AllowAttrs("href", "title").OnElements("a")
		emailPolicy.AllowAttrs("align").OnElements("p", "div", "td", "th", "h1", "h2", "h3", "h4")
		emailPolicy.AllowStyles("color", "background-color", "font-weight", "font-style", "text-align", "text-decoration").Globally()
		emailPolicy.RequireNoFollowOnLinks(true)
		emailPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
}

// EmailHTML keeps formatting suitable for an email body and strips everything
// executable: scripts, event handlers, javascript: URLs, iframes and forms.
func EmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// StripHTML removes all markup and returns the unescaped, trimmed text content.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
