package render

import (
	"html/template"
	"strings"
)

// NavPage is one entry of the top navigation bar.
type NavPage struct {
	Href  string
	Icon  string
	Label string
}

// NavPages are the navigation entries, in display order.
var NavPages = []NavPage{
	{Href: "feed.html", Icon: "🏠", Label: "Home"},
	{Href: "profiles.html", Icon: "👥", Label: "Network"},
	{Href: "jobs.html", Icon: "💼", Label: "Jobs"},
	{Href: "articles.html", Icon: "📝", Label: "Articles"},
}

// NavLinks renders the navigation list items, marking the one whose href equals active.
func NavLinks(active string) template.HTML {
	var b strings.Builder
	for _, p := range NavPages {
		class := ""
		if p.Href == active {
			class = "active"
		}
		b.WriteString("\n    <li>\n")
		b.WriteString("      <a href=\"" + p.Href + "\" class=\"" + class + "\">\n")
		b.WriteString("        <span class=\"nav-icon\">" + p.Icon + "</span>\n")
		b.WriteString("        <span class=\"nav-label\">" + p.Label + "</span>\n")
		b.WriteString("      </a>\n")
		b.WriteString("    </li>")
	}
	return template.HTML(b.String())
}

// Nav renders the full top navigation bar.
func Nav(active string) template.HTML {
	var b strings.Builder
	b.WriteString(navHead)
	b.WriteString(string(NavLinks(active)))
	b.WriteString(navTail)
	return template.HTML(b.String())
}

const navHead = `
    <nav class="cj-nav">
      <div class="cj-nav-inner">
        <a href="index.html" class="cj-logo">
          <div class="cj-logo-mark">
            <svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
              <path d="M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm0 3c1.66 0 3 1.34 3 3s-1.34 3-3 3-3-1.34-3-3 1.34-3 3-3zm0 14.2c-2.5 0-4.71-1.28-6-3.22.03-1.99 4-3.08 6-3.08 1.99 0 5.97 1.09 6 3.08-1.29 1.94-3.5 3.22-6 3.22z"/>
            </svg>
          </div>
          <span class="cj-logo-text">circlejerk</span>
        </a>
        <div class="cj-search">
          <span class="cj-search-icon">🔍</span>
          <input type="text" placeholder="Search">
        </div>
        <ul class="cj-nav-links">`

const navTail = `
          <li><a href="#" class="cj-nav-cta">Sign in</a></li>
        </ul>
      </div>
    </nav>`

// Footer renders the static page footer.
func Footer() template.HTML {
	return `
    <footer class="cj-footer">
      <div class="cj-footer-inner">
        <span>circlejerk &copy; 2025 &mdash; circlejerkedit.com</span>
        <ul class="cj-footer-links">
          <li><a href="#">About</a></li>
          <li><a href="#">Privacy</a></li>
          <li><a href="#">Terms</a></li>
          <li><a href="#">Jobs Board</a></li>
          <li><a href="#">Advertising</a></li>
        </ul>
      </div>
    </footer>`
}

// LoadErrorMessage is shown in place of the page when the fixture cannot be loaded.
const LoadErrorMessage = "Failed to load data. Please refresh the page."

// LoadErrorPage is the complete document served when the fixture fails to load.
// It replaces the whole page body and depends on nothing but itself.
func LoadErrorPage() template.HTML {
	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>circlejerk</title>
</head>
<body>
  <div class="cj-load-error" style="padding:40px;text-align:center;color:#666;">` + LoadErrorMessage + `</div>
</body>
</html>
`
}
