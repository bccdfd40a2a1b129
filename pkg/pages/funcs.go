package pages

import (
	"html/template"

	"github.com/CTAG07/circlejerk/pkg/render"
)

func makeFuncMap() template.FuncMap {
	return template.FuncMap{
		// Page chrome (from package render)
		"nav":            render.Nav,
		"navLinks":       render.NavLinks,
		"footer":         render.Footer,
		"sidebarProfile": render.SidebarProfile,
		"expandScript":   render.ExpandScript,
		"avatar":         render.Avatar,

		// Formatting
		"formatNumber": render.FormatNumber,
		"escape":       render.Escape,

		// Simple
		"add":    add,
		"sub":    sub,
		"plural": plural,
	}
}

// add returns a + b.
func add(a, b int) int {
	return a + b
}

// sub returns a - b.
func sub(a, b int) int {
	return a - b
}

// plural picks one when n is 1 and many otherwise.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
