/*
Package fixture loads the read-only circlejerk dataset: the characters and posts
that every page of the mockup renders from.

A Loader fetches the document from a Source (a JSON file on disk, a URL, or a
SQLite database) exactly once and hands out the same *Dataset on every later
call until it is explicitly invalidated. Lookups on a Dataset never fail loudly;
callers decide what a missing character means.
*/
package fixture
