package render

import "testing"

func TestEscape(t *testing.T) {
	cases := map[string]string{
		"<script>":             "&lt;script&gt;",
		"Synergy & Growth":     "Synergy &amp; Growth",
		`say "hustle"`:         "say &quot;hustle&quot;",
		"plain text":           "plain text",
		"it's fine":            "it's fine",
		"&lt;already&gt;":      "&amp;lt;already&amp;gt;",
		"🚀 10x your mindset": "🚀 10x your mindset",
	}
	for in, want := range cases {
		if got := Escape(in); got != want {
			t.Errorf("Escape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQueryParam(t *testing.T) {
	if v, ok := QueryParam("profile.html?id=chad&tab=posts", "id"); !ok || v != "chad" {
		t.Errorf("QueryParam(id) = %q, %v", v, ok)
	}
	if v, ok := QueryParam("https://circlejerkedit.com/article.html?id=a%20b", "id"); !ok || v != "a b" {
		t.Errorf("QueryParam should unescape values, got %q, %v", v, ok)
	}
	if _, ok := QueryParam("profile.html", "id"); ok {
		t.Error("QueryParam should report a missing parameter")
	}
	if v, ok := QueryParam("profile.html?id=", "id"); !ok || v != "" {
		t.Errorf("an empty parameter is still present, got %q, %v", v, ok)
	}
	if _, ok := QueryParam("%zz", "id"); ok {
		t.Error("QueryParam should fail on an unparseable URL")
	}
}
