package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Source fetches a fresh copy of the dataset. Implementations do no caching of
// their own; that is the Loader's job.
type Source interface {
	Fetch(ctx context.Context) (*Dataset, error)
	Name() string
}

// Decode parses a fixture document.
func Decode(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &ds, nil
}

// FileSource reads the fixture from disk. If PostsPath is set, the posts array
// of that second document replaces whatever posts the main document carried.
type FileSource struct {
	Path      string
	PostsPath string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(_ context.Context) (*Dataset, error) {
	ds, err := decodeFile(s.Path)
	if err != nil {
		return nil, err
	}
	if s.PostsPath != "" {
		posts, err := decodeFile(s.PostsPath)
		if err != nil {
			return nil, err
		}
		ds.Posts = posts.Posts
	}
	return ds, nil
}

func decodeFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)
	return Decode(file)
}

// HTTPSource fetches the fixture from a URL. A nil Client means http.DefaultClient.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return "http:" + s.URL }

func (s HTTPSource) Fetch(ctx context.Context) (*Dataset, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fixture request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch fixture: unexpected status %s", resp.Status)
	}
	return Decode(resp.Body)
}
