package fixture

import (
	"errors"
	"fmt"
)

// PostTypeArticle marks a post that references a long-form article. Every other
// type tag, including the empty one, is treated as a standard text update.
const (
	PostTypeStandard = "standard"
	PostTypeArticle  = "article"
)

// ErrDanglingReference is reported by Validate for every author or commenter
// id that does not resolve to a character.
var ErrDanglingReference = errors.New("fixture: dangling character reference")

// Character is a mock user profile.
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Avatar      string `json:"avatar"`
	AvatarColor string `json:"avatarColor"`
}

// Comment is a single reply attached to a post.
type Comment struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Post is a feed entry. Standard posts carry Text, articles carry Headline and
// Excerpt. A nil Comments slice means the fixture had no comments array at all,
// which renders differently from an empty one.
type Post struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	Headline string    `json:"headline,omitempty"`
	Excerpt  string    `json:"excerpt,omitempty"`
	Date     string    `json:"date"`
	Likes    int       `json:"likes"`
	Comments []Comment `json:"comments"`
}

// IsArticle reports whether the post is an article reference.
func (p Post) IsArticle() bool {
	return p.Type == PostTypeArticle
}

// Dataset is the whole fixture document.
type Dataset struct {
	Characters []Character `json:"characters"`
	Posts      []Post      `json:"posts,omitempty"`
}

// Character returns the character with the given id.
func (d *Dataset) Character(id string) (Character, bool) {
	if d == nil {
		return Character{}, false
	}
	for _, c := range d.Characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}

// Post returns the post with the given id.
func (d *Dataset) Post(id string) (Post, bool) {
	if d == nil {
		return Post{}, false
	}
	for _, p := range d.Posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Articles returns the article posts in fixture order.
func (d *Dataset) Articles() []Post {
	if d == nil {
		return nil
	}
	var articles []Post
	for _, p := range d.Posts {
		if p.IsArticle() {
			articles = append(articles, p)
		}
	}
	return articles
}

// PostsBy returns every post written by the given character, in fixture order.
func (d *Dataset) PostsBy(author string) []Post {
	if d == nil {
		return nil
	}
	var posts []Post
	for _, p := range d.Posts {
		if p.Author == author {
			posts = append(posts, p)
		}
	}
	return posts
}

// Validate checks that every post author and commenter resolves to a
// character. The returned error joins one ErrDanglingReference per miss.
func (d *Dataset) Validate() error {
	known := make(map[string]struct{}, len(d.Characters))
	for _, c := range d.Characters {
		known[c.ID] = struct{}{}
	}

	var errs []error
	for _, p := range d.Posts {
		if _, ok := known[p.Author]; !ok {
			errs = append(errs, fmt.Errorf("%w: post %q author %q", ErrDanglingReference, p.ID, p.Author))
		}
		for i, c := range p.Comments {
			if _, ok := known[c.Author]; !ok {
				errs = append(errs, fmt.Errorf("%w: post %q comment %d author %q", ErrDanglingReference, p.ID, i, c.Author))
			}
		}
	}
	return errors.Join(errs...)
}
