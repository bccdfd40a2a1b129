package render

import "net/url"

// Links builds the hrefs that fragments point at.
type Links interface {
	Profile(id string) string
	Article(id string) string
}

// QueryLinks addresses detail pages through an id query parameter, the way the
// served site does: profile.html?id=chad.
type QueryLinks struct{}

func (QueryLinks) Profile(id string) string { return "profile.html?id=" + url.QueryEscape(id) }
func (QueryLinks) Article(id string) string { return "article.html?id=" + url.QueryEscape(id) }

// StaticLinks addresses one pre-rendered file per entity: profile-chad.html.
type StaticLinks struct{}

func (StaticLinks) Profile(id string) string { return "profile-" + url.PathEscape(id) + ".html" }
func (StaticLinks) Article(id string) string { return "article-" + url.PathEscape(id) + ".html" }
