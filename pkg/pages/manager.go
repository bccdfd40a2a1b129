package pages

import (
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Manager owns the parsed page templates.
// All methods are concurrent-safe.
type Manager struct {
	logger      *slog.Logger
	templates   *template.Template
	pageNames   []string
	funcMap     template.FuncMap
	templateDir string
	mu          sync.RWMutex
}

// NewManager creates a Manager for templateDir and performs an initial Refresh.
func NewManager(logger *slog.Logger, templateDir string) (*Manager, error) {
	m := &Manager{
		logger:      logger,
		templateDir: templateDir,
		funcMap:     makeFuncMap(),
	}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	logger.Info("Page manager initialized", "dir", templateDir)
	return m, nil
}

// Refresh reloads every page and partial from the template directory. On error
// the previously loaded set stays in place.
func (m *Manager) Refresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePattern := filepath.Join(m.templateDir, "*"+PageSuffix)
	m.logger.Debug("Loading page files...", "pattern", filePattern)

	parsed, err := template.New("").Funcs(m.funcMap).ParseGlob(filePattern)
	var names []string
	if err != nil {
		if !strings.Contains(err.Error(), "pattern matches no files") {
			m.logger.Error("failed to parse page files", "error", err)
			return err
		}
		parsed = template.New("").Funcs(m.funcMap)
	} else {
		for _, t := range parsed.Templates() {
			if strings.HasSuffix(t.Name(), PageSuffix) {
				names = append(names, t.Name())
			}
		}
	}

	filePattern = filepath.Join(m.templateDir, "*"+PartialSuffix)
	withPartials, err := parsed.ParseGlob(filePattern)
	if err != nil {
		if !strings.Contains(err.Error(), "pattern matches no files") {
			m.logger.Error("failed to parse partial files", "error", err)
			return err
		}
		withPartials = parsed
	}

	if len(names) == 0 {
		m.logger.Warn("No page files found", "dir", m.templateDir)
	}
	sort.Strings(names)

	m.templates = withPartials
	m.pageNames = names
	m.logger.Info("Loaded page and partial files", "pages", len(names), "templates", len(withPartials.Templates())-1)
	return nil
}

// Execute renders the named page into w.
func (m *Manager) Execute(w io.Writer, name string, data PageData) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.templates.ExecuteTemplate(w, name, data)
}

// HasPage reports whether a page template with the given name is loaded.
func (m *Manager) HasPage(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.pageNames {
		if n == name {
			return true
		}
	}
	return false
}

// PageNames returns the loaded page template names, sorted.
func (m *Manager) PageNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.pageNames...)
}

// TemplateDir returns the directory the manager loads from.
func (m *Manager) TemplateDir() string {
	return m.templateDir
}
