/*
Package render turns fixture records into the HTML fragments of the circlejerk
mockup: post cards, comments, sidebar widgets, the navigation bar and the footer.

Every renderer is a pure function of its inputs. Textual fields pass through
Escape, which neutralizes exactly &, <, > and ". Nothing here escapes for URL or
script contexts, so the fragments are only suitable for the trusted demo fixture.
For example, a post id containing a single quote breaks the expandPost('id')
handler of the see-more button, because Escape leaves ' untouched.

Lookups that fail (an unknown post author, an unknown commenter) make the
affected fragment disappear instead of producing an error.
*/
package render
