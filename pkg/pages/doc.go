/*
Package pages assembles whole circlejerk pages from html/template files on disk.

Page templates (*.tmpl.html) and shared partials (*.part.html) are loaded from a
single directory and can be reloaded at runtime with Refresh. Templates receive a
PageData value and embed fragments from package render through it, e.g.
{{nav .Active}} or {{.R.Post $post}}.
*/
package pages
