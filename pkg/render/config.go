package render

// Config holds the tunable parts of the fragment renderers.
type Config struct {
	// TruncateLimit is the length, in characters, above which a standard post
	// body is collapsed behind a "see more" control.
	TruncateLimit int `json:"truncate_limit"`

	// PYMKCount is the number of characters listed in "People you may know".
	PYMKCount int `json:"pymk_count"`
}

// DefaultConfig returns the values the mockup was designed around.
func DefaultConfig() *Config {
	return &Config{
		TruncateLimit: 280,
		PYMKCount:     4,
	}
}
