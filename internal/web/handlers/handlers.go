package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Renu-telugu/user-management-app/internal/users"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	svc       *users.Service
	templates map[string]*template.Template
	appName   string
}

// New creates a new Handlers instance
func New(svc *users.Service, templates map[string]*template.Template, appName string) *Handlers {
	return &Handlers{
		svc:       svc,
		templates: templates,
		appName:   appName,
	}
}

// PageData contains common data for all pages
type PageData struct {
	Title    string
	Flash    string
	FlashErr string
	Content  any
}

// render renders a template with common data
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	pageData := PageData{
		Title:   h.appName,
		Content: data,
	}

	// Check for flash messages in cookies
	if cookie, err := r.Cookie("flash"); err == nil {
		pageData.Flash = cookie.Value
		http.SetCookie(w, &http.Cookie{Name: "flash", MaxAge: -1, Path: "/", SameSite: http.SameSiteLaxMode})
	}
	if cookie, err := r.Cookie("flash_err"); err == nil {
		pageData.FlashErr = cookie.Value
		http.SetCookie(w, &http.Cookie{Name: "flash_err", MaxAge: -1, Path: "/", SameSite: http.SameSiteLaxMode})
	}

	tmpl, ok := h.templates[name]
	if !ok {
		log.Error().Str("template", name).Msg("Template not found")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", pageData); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// flash sets a flash message
func (h *Handlers) flash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "flash",
		Value:    message,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// flashErr sets an error flash message
func (h *Handlers) flashErr(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "flash_err",
		Value:    message,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirect redirects to a URL
func (h *Handlers) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}
