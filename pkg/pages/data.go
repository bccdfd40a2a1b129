package pages

import (
	"net/url"
	"strings"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/render"
)

const (
	// PageSuffix marks a full page template.
	PageSuffix = ".tmpl.html"
	// PartialSuffix marks a template that is only included by pages.
	PartialSuffix = ".part.html"
)

// PageData is the value every page template executes against.
type PageData struct {
	// Name is the template name, Active the href the navigation bar highlights.
	Name   string
	Active string

	R     *render.Renderer
	Data  *fixture.Dataset
	Query url.Values

	// Character and Post are resolved from the "id" query parameter for detail
	// pages; either is nil when the id does not match.
	Character   *fixture.Character
	Post        *fixture.Post
	AuthorPosts []fixture.Post
}

// NewPageData builds the data for the named page. query may be nil.
func NewPageData(name string, r *render.Renderer, query url.Values) PageData {
	pd := PageData{
		Name:   name,
		Active: PageHref(name),
		R:      r,
		Data:   r.Data(),
		Query:  query,
	}
	id := query.Get("id")
	if id == "" {
		return pd
	}
	if c, ok := pd.Data.Character(id); ok {
		pd.Character = &c
		pd.AuthorPosts = pd.Data.PostsBy(id)
	}
	if p, ok := pd.Data.Post(id); ok {
		pd.Post = &p
	}
	return pd
}

// PageHref maps a template name to the href it is served at: feed.tmpl.html -> feed.html.
func PageHref(name string) string {
	return strings.TrimSuffix(name, PageSuffix) + ".html"
}

// PageName maps an href back to its template name: feed.html -> feed.tmpl.html.
func PageName(href string) string {
	return strings.TrimSuffix(href, ".html") + PageSuffix
}
