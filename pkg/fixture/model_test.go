package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := decodeFile(filepath.Join("testdata", "data.json"))
	if err != nil {
		t.Fatalf("failed to decode testdata: %v", err)
	}
	return ds
}

func TestDataset_Lookups(t *testing.T) {
	ds := loadTestDataset(t)

	t.Run("Character", func(t *testing.T) {
		c, ok := ds.Character("brenda")
		if !ok || c.Name != "Brenda Synergy" {
			t.Errorf("Character(brenda) = %+v, %v", c, ok)
		}
		if _, ok = ds.Character("ghost"); ok {
			t.Error("Character(ghost) should not be found")
		}
	})

	t.Run("Post", func(t *testing.T) {
		p, ok := ds.Post("p2")
		if !ok || !p.IsArticle() {
			t.Errorf("Post(p2) = %+v, %v; want an article", p, ok)
		}
		if _, ok = ds.Post("nope"); ok {
			t.Error("Post(nope) should not be found")
		}
	})

	t.Run("Articles", func(t *testing.T) {
		articles := ds.Articles()
		if len(articles) != 1 || articles[0].ID != "p2" {
			t.Errorf("Articles() = %+v", articles)
		}
	})

	t.Run("PostsBy", func(t *testing.T) {
		if posts := ds.PostsBy("kyle"); len(posts) != 1 || posts[0].ID != "p3" {
			t.Errorf("PostsBy(kyle) = %+v", posts)
		}
	})

	t.Run("NilDataset", func(t *testing.T) {
		var empty *Dataset
		if _, ok := empty.Character("chad"); ok {
			t.Error("nil dataset should not resolve characters")
		}
		if empty.Articles() != nil {
			t.Error("nil dataset should have no articles")
		}
	})
}

func TestDataset_CommentsPresence(t *testing.T) {
	ds := loadTestDataset(t)
	p2, _ := ds.Post("p2")
	if p2.Comments == nil {
		t.Error("an empty comments array should decode to a non-nil slice")
	}
	p3, _ := ds.Post("p3")
	if p3.Comments != nil {
		t.Error("a missing comments array should decode to nil")
	}
}

func TestDataset_CommentsPresenceSurvivesEncoding(t *testing.T) {
	raw, err := json.Marshal(loadTestDataset(t))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	ds, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	p2, _ := ds.Post("p2")
	if p2.Comments == nil {
		t.Errorf("empty comments array lost after re-encoding: %s", raw)
	}
	p3, _ := ds.Post("p3")
	if p3.Comments != nil {
		t.Errorf("missing comments array should stay nil after re-encoding, got %v", p3.Comments)
	}
}

func TestDataset_Validate(t *testing.T) {
	ds := loadTestDataset(t)
	err := ds.Validate()
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("Validate() = %v, want ErrDanglingReference", err)
	}
	if !strings.Contains(err.Error(), `"ghost"`) {
		t.Errorf("error should name the missing commenter, got %v", err)
	}

	ds.Posts[0].Comments = ds.Posts[0].Comments[:1]
	if err = ds.Validate(); err != nil {
		t.Errorf("Validate() on a consistent dataset = %v", err)
	}
}
