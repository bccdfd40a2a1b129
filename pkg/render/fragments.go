package render

import (
	"html/template"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/CTAG07/circlejerk/pkg/fixture"
)

// Avatar sizes understood by the stylesheet.
const (
	AvatarSmall  = "sm"
	AvatarMedium = "md"
	AvatarLarge  = "lg"
)

// Renderer renders fragments against one loaded dataset. It holds no mutable
// state, so a single Renderer can serve any number of goroutines.
type Renderer struct {
	data   *fixture.Dataset
	config Config
	now    func() time.Time
	links  Links
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// WithLinks sets how profile and article hrefs are built.
func WithLinks(links Links) Option {
	return func(r *Renderer) {
		r.links = links
	}
}

// NewRenderer returns a Renderer over data. A nil config means DefaultConfig.
func NewRenderer(data *fixture.Dataset, config *Config, opts ...Option) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	r := &Renderer{
		data:   data,
		config: *config,
		now:    time.Now,
		links:  QueryLinks{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Data returns the dataset the renderer reads from.
func (r *Renderer) Data() *fixture.Dataset {
	return r.data
}

// Links returns the link builder in use.
func (r *Renderer) Links() Links {
	return r.links
}

// RelativeDate formats date relative to the renderer's clock. The result is
// already escaped, so templates print it as-is.
func (r *Renderer) RelativeDate(date string) template.HTML {
	return template.HTML(RelativeDate(date, r.now()))
}

// Avatar renders a character's glyph on its background color.
func Avatar(c fixture.Character, size string) template.HTML {
	if size == "" {
		size = AvatarMedium
	}
	return template.HTML(`<div class="cj-avatar cj-avatar-` + Escape(size) + `" style="background:` + Escape(c.AvatarColor) + `">` + Escape(c.Avatar) + `</div>`)
}

// Post renders a full post card. It returns an empty fragment when the author
// cannot be resolved.
func (r *Renderer) Post(p fixture.Post) template.HTML {
	author, ok := r.data.Character(p.Author)
	if !ok {
		return ""
	}
	profile := Escape(r.links.Profile(author.ID))

	var b strings.Builder
	b.WriteString("\n    <div class=\"cj-card cj-post cj-gap\">\n")
	b.WriteString("      <div class=\"cj-post-header\">\n")
	b.WriteString("        <a href=\"" + profile + "\">" + string(Avatar(author, AvatarMedium)) + "</a>\n")
	b.WriteString("        <div class=\"cj-post-author-info\">\n")
	b.WriteString("          <div class=\"cj-post-author-name\"><a href=\"" + profile + "\">" + Escape(author.Name) + "</a></div>\n")
	b.WriteString("          <div class=\"cj-post-author-title\">" + Escape(author.Title) + "</div>\n")
	b.WriteString("          <div class=\"cj-post-meta\">" + string(r.RelativeDate(p.Date)) + " • 🌐</div>\n")
	b.WriteString("        </div>\n")
	b.WriteString("      </div>\n")

	if p.IsArticle() {
		r.writeArticleBody(&b, author, p)
	} else {
		r.writeStandardBody(&b, p)
	}

	b.WriteString("      <div class=\"cj-post-reactions\">\n")
	b.WriteString("        <span class=\"cj-reaction-emojis\">👍❤️😂</span>&nbsp;" + FormatNumber(p.Likes) + "\n")
	if p.Comments != nil {
		b.WriteString("        <span style=\"margin-left:auto\">" + strconv.Itoa(len(p.Comments)) + " " + plural(len(p.Comments), "comment", "comments") + "</span>\n")
	}
	b.WriteString("      </div>\n")

	b.WriteString("      <div class=\"cj-post-actions\">\n")
	for _, action := range postActions {
		b.WriteString("        <button class=\"cj-action-btn\"><span class=\"cj-action-icon\">" + action.icon + "</span><span>" + action.label + "</span></button>\n")
	}
	b.WriteString("      </div>\n")

	b.WriteString(string(r.Comments(p.Comments)))
	b.WriteString("    </div>")
	return template.HTML(b.String())
}

var postActions = []struct{ icon, label string }{
	{"👍", "Like"},
	{"💬", "Comment"},
	{"🔁", "Repost"},
	{"📤", "Send"},
}

func (r *Renderer) writeArticleBody(b *strings.Builder, author fixture.Character, p fixture.Post) {
	b.WriteString("      <p class=\"cj-post-body cj-post-body-article\">" + Escape(author.Name) + " published an article</p>\n")
	b.WriteString("      <div class=\"cj-article-card\" onclick=\"location.href='" + Escape(r.links.Article(p.ID)) + "'\">\n")
	b.WriteString("        <div class=\"cj-article-thumb\">📝</div>\n")
	b.WriteString("        <div class=\"cj-article-info\">\n")
	b.WriteString("          <div class=\"cj-article-headline\">" + Escape(p.Headline) + "</div>\n")
	b.WriteString("          <div class=\"cj-article-excerpt\">" + Escape(p.Excerpt) + "</div>\n")
	b.WriteString("        </div>\n")
	b.WriteString("      </div>\n")
}

// writeStandardBody adds the truncated class only to bodies over the limit,
// always paired with the see-more button. See DESIGN.md on truncation.
func (r *Renderer) writeStandardBody(b *strings.Builder, p fixture.Post) {
	id := Escape(p.ID)
	if !r.Truncated(p) {
		b.WriteString("      <div class=\"cj-post-body\" id=\"body-" + id + "\">" + Escape(p.Text) + "</div>\n")
		return
	}
	b.WriteString("      <div class=\"cj-post-body truncated\" id=\"body-" + id + "\">" + Escape(p.Text) + "</div>\n")
	b.WriteString("      <button class=\"cj-post-see-more\" onclick=\"expandPost('" + id + "')\">...see more</button>\n")
}

// Truncated reports whether a standard post's body is long enough to be
// collapsed behind the expansion control.
func (r *Renderer) Truncated(p fixture.Post) bool {
	return !p.IsArticle() && utf8.RuneCountInString(p.Text) > r.config.TruncateLimit
}

// Comments renders the comment list of a post. Comments by unknown characters
// are skipped; an empty list renders nothing.
func (r *Renderer) Comments(comments []fixture.Comment) template.HTML {
	if len(comments) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("      <div class=\"cj-comments\">\n")
	for _, c := range comments {
		commenter, ok := r.data.Character(c.Author)
		if !ok {
			continue
		}
		b.WriteString("        <div class=\"cj-comment\">\n")
		b.WriteString("          " + string(Avatar(commenter, AvatarSmall)) + "\n")
		b.WriteString("          <div class=\"cj-comment-bubble\">\n")
		b.WriteString("            <div class=\"cj-comment-author\"><a href=\"" + Escape(r.links.Profile(commenter.ID)) + "\">" + Escape(commenter.Name) + "</a></div>\n")
		b.WriteString("            <div class=\"cj-comment-text\">" + Escape(c.Text) + "</div>\n")
		b.WriteString("          </div>\n")
		b.WriteString("        </div>\n")
	}
	b.WriteString("      </div>\n")
	return template.HTML(b.String())
}

// Posts renders every post in order, skipping the ones whose author is unknown.
func (r *Renderer) Posts(posts []fixture.Post) template.HTML {
	var b strings.Builder
	for _, p := range posts {
		b.WriteString(string(r.Post(p)))
	}
	return template.HTML(b.String())
}

// SidebarProfile renders the generic "you" card shown in the left column.
func SidebarProfile() template.HTML {
	return sidebarProfileHTML
}

const sidebarProfileHTML template.HTML = `
    <div class="cj-card cj-sidebar-profile">
      <div class="cj-sidebar-profile-banner"></div>
      <div class="cj-sidebar-profile-body">
        <div class="cj-sidebar-avatar-wrap">
          <div class="cj-avatar cj-avatar-lg" style="background:#0a66c2">CJ</div>
        </div>
        <div class="cj-sidebar-profile-name">Welcome to Circlejerk</div>
        <div class="cj-sidebar-profile-title">Your self-congratulatory professional community</div>
        <hr class="cj-sidebar-divider">
        <div class="cj-sidebar-stat">
          <span class="cj-sidebar-stat-label">Profile views</span>
          <span class="cj-sidebar-stat-value">—</span>
        </div>
        <div class="cj-sidebar-stat">
          <span class="cj-sidebar-stat-label">Post impressions</span>
          <span class="cj-sidebar-stat-value">—</span>
        </div>
        <div class="cj-sidebar-premium">
          <a href="#">Try Circlejerk Premium Free</a><br>
          <span>Be seen by important people who matter.</span>
        </div>
      </div>
    </div>`

// PeopleYouMayKnow lists the first few characters other than exclude.
// Pass an empty exclude to consider everyone.
func (r *Renderer) PeopleYouMayKnow(exclude string) template.HTML {
	var b strings.Builder
	b.WriteString("\n    <div class=\"cj-card\">\n")
	b.WriteString("      <div class=\"cj-card-title\">People you may know</div>\n")

	listed := 0
	for _, c := range r.data.Characters {
		if listed >= r.config.PYMKCount {
			break
		}
		if c.ID == exclude {
			continue
		}
		listed++
		profile := Escape(r.links.Profile(c.ID))
		b.WriteString("      <div class=\"cj-pymk-item\">\n")
		b.WriteString("        <a href=\"" + profile + "\">" + string(Avatar(c, AvatarMedium)) + "</a>\n")
		b.WriteString("        <div class=\"cj-pymk-info\">\n")
		b.WriteString("          <div class=\"cj-pymk-name\"><a href=\"" + profile + "\">" + Escape(c.Name) + "</a></div>\n")
		b.WriteString("          <div class=\"cj-pymk-title\">" + Escape(c.Title) + "</div>\n")
		b.WriteString("        </div>\n")
		b.WriteString("        <button class=\"cj-connect-btn\">+ Follow</button>\n")
		b.WriteString("      </div>\n")
	}

	b.WriteString("      <a href=\"profiles.html\" class=\"cj-card-title-link\">View all profiles →</a>\n")
	b.WriteString("    </div>")
	return template.HTML(b.String())
}

// ExpandScript defines the expandPost handler used by the "see more" control.
func ExpandScript() template.HTML {
	return `<script>
function expandPost(id) {
  var body = document.getElementById('body-' + id);
  if (body) {
    body.classList.remove('truncated');
    if (body.nextElementSibling) { body.nextElementSibling.style.display = 'none'; }
  }
}
</script>`
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
