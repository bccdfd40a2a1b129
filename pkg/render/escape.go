package render

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape replaces &, <, > and " with their HTML entities and leaves every other
// character untouched.
func Escape(s string) string {
	return htmlReplacer.Replace(s)
}
