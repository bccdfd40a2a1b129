package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/pages"
	"github.com/CTAG07/circlejerk/pkg/render"
)

// Server serves the rendered pages, the static assets and a small control API.
type Server struct {
	config *Config
	logger *slog.Logger
	loader *fixture.Loader
	pm     *pages.Manager
	mux    *http.ServeMux
}

// NewServer wires the handlers for the given loader and page manager.
func NewServer(config *Config, logger *slog.Logger, loader *fixture.Loader, pm *pages.Manager) *Server {
	s := &Server{
		config: config,
		logger: logger,
		loader: loader,
		pm:     pm,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/refresh", s.handleRefresh)
	s.mux.HandleFunc("/data/data.json", s.handleData)

	staticFs := http.FileServer(http.Dir(config.Server.StaticDir))
	s.mux.Handle("/static/", http.StripPrefix("/static/", staticFs))
	s.mux.HandleFunc("/favicon.ico", handleFavicon)
	s.mux.HandleFunc("/", s.handlePage)
	return s
}

// ServeHTTP makes the Server usable as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handlePage renders /{name}.html from {name}.tmpl.html. The root path serves index.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	href := strings.TrimPrefix(r.URL.Path, "/")
	if href == "" {
		href = "index.html"
	}
	if strings.Contains(href, "/") || !strings.HasSuffix(href, ".html") {
		http.NotFound(w, r)
		return
	}
	name := pages.PageName(href)
	if !s.pm.HasPage(name) {
		http.NotFound(w, r)
		return
	}

	ds, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Error("Serving load error page", "page", name, "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(render.LoadErrorPage()))
		return
	}

	renderer := render.NewRenderer(ds, s.config.Render)
	var buf bytes.Buffer
	if err = s.pm.Execute(&buf, name, pages.NewPageData(name, renderer, r.URL.Query())); err != nil {
		s.logger.Error("Failed to execute page", "page", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.logger.Debug("Serving page", "page", name, "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleData exposes the loaded fixture to page scripts.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	ds, err := s.loader.Load(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, render.LoadErrorMessage)
		return
	}
	respondWithJSON(w, http.StatusOK, ds)
}

// handleHealth reports whether the fixture is currently loadable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if _, err := s.loader.Load(r.Context()); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRefresh drops the cached fixture and reloads the page templates.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.loader.Invalidate()
	if err := s.pm.Refresh(); err != nil {
		s.logger.Error("API triggered refresh failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh templates: "+err.Error())
		return
	}
	s.logger.Info("Fixture and templates refreshed via API")
	w.WriteHeader(http.StatusNoContent)
}

// handleFavicon answers favicon requests with no content.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// isLoadError reports whether err came from the fixture loader.
func isLoadError(err error) bool {
	return errors.Is(err, fixture.ErrLoad)
}
