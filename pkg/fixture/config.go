package fixture

// Source kinds understood by the command line tools.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

// Config selects and configures the fixture source.
type Config struct {
	// Source is one of SourceFile, SourceHTTP or SourceSQLite.
	Source string `json:"source"`

	// Path is the fixture document read by the file source.
	Path string `json:"path"`

	// PostsPath optionally names a second document supplying the posts.
	PostsPath string `json:"posts_path"`

	// URL is fetched by the http source.
	URL string `json:"url"`

	// DatabasePath is the data source name of the sqlite source.
	DatabasePath string `json:"database_path"`

	// Strict makes the loader reject datasets with unresolved character references
	// instead of letting the renderers omit the affected fragments.
	Strict bool `json:"strict"`
}

// DefaultConfig returns a Config reading data/data.json from the working directory.
func DefaultConfig() *Config {
	return &Config{
		Source:       SourceFile,
		Path:         "./data/data.json",
		DatabasePath: "./data/circlejerk.db",
	}
}
