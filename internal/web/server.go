// Package web serves the HTML user interface.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Renu-telugu/user-management-app/internal/users"
	"github.com/Renu-telugu/user-management-app/internal/web/handlers"
	"github.com/Renu-telugu/user-management-app/internal/web/middleware"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Server represents the web server
type Server struct {
	svc       *users.Service
	port      int
	bind      string
	appName   string
	router    *chi.Mux
	templates map[string]*template.Template
	handlers  *handlers.Handlers
}

// NewServer creates a new web server
func NewServer(svc *users.Service, port int, bind, appName string) *Server {
	s := &Server{
		svc:     svc,
		port:    port,
		bind:    bind,
		appName: appName,
		router:  chi.NewRouter(),
	}

	s.loadTemplates()
	s.setupRoutes()

	return s
}

// loadTemplates loads all HTML templates
// Each page template is parsed together with the base template
func (s *Server) loadTemplates() {
	s.templates = make(map[string]*template.Template)

	pageTemplates := []string{
		"home.html",
		"users.html",
		"user_new.html",
		"user_edit.html",
		"user_delete.html",
	}

	for _, page := range pageTemplates {
		tmpl, err := template.ParseFS(templatesFS,
			"templates/base.html",
			"templates/"+page,
		)
		if err != nil {
			log.Fatal().Err(err).Str("template", page).Msg("Failed to parse template")
		}
		s.templates[page] = tmpl
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.MethodOverride)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Static files
	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to setup static files")
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))

	h := handlers.New(s.svc, s.templates, s.appName)
	s.handlers = h

	r.Get("/", h.Home)

	r.Route("/user", func(r chi.Router) {
		r.Get("/", h.UsersPage)
		r.Get("/new", h.UserNewPage)
		r.Post("/new", h.UserCreate)
		r.Get("/{id}/edit", h.UserEditPage)
		r.Patch("/{id}", h.UserRename)
		r.Get("/{id}/delete", h.UserDeletePage)
		r.Delete("/{id}", h.UserDelete)
	})
}

// Start starts the web server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
