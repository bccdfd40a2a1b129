package render

import (
	"strings"
	"testing"
)

func TestNavLinks(t *testing.T) {
	html := string(NavLinks("jobs.html"))
	if strings.Count(html, "<li>") != len(NavPages) {
		t.Errorf("expected %d nav entries", len(NavPages))
	}
	if !strings.Contains(html, `<a href="jobs.html" class="active">`) {
		t.Error("the active page should be marked")
	}
	if strings.Count(html, `class="active"`) != 1 {
		t.Error("exactly one entry should be active")
	}

	if strings.Contains(string(NavLinks("index.html")), `class="active"`) {
		t.Error("a page outside the nav should mark nothing active")
	}
}

func TestNav(t *testing.T) {
	html := string(Nav("feed.html"))
	for _, want := range []string{`class="cj-nav"`, "circlejerk", `placeholder="Search"`, "Sign in", `<a href="feed.html" class="active">`} {
		if !strings.Contains(html, want) {
			t.Errorf("nav is missing %q", want)
		}
	}
}

func TestFooterAndErrorPage(t *testing.T) {
	if !strings.Contains(string(Footer()), "circlejerk &copy; 2025") {
		t.Error("footer has unexpected content")
	}
	page := string(LoadErrorPage())
	if !strings.Contains(page, LoadErrorMessage) || !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Error("error page should be a full document carrying the load error message")
	}
}
