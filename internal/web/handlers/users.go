package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Renu-telugu/user-management-app/internal/users"
)

// HomeData contains data for the home page
type HomeData struct {
	UserCount int
}

// Home renders the landing page with the registered user count
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to count users")
		h.flashErr(w, "Database error occurred")
		count = 0
	}
	h.render(w, r, "home.html", HomeData{UserCount: count})
}

// UsersData contains data for the user list page
type UsersData struct {
	Users []users.User
}

// UsersPage renders the user list
func (h *Handlers) UsersPage(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		h.flashErr(w, "Error retrieving users")
		h.redirect(w, r, "/")
		return
	}
	h.render(w, r, "users.html", UsersData{Users: list})
}

// UserNewPage renders the add-user form
func (h *Handlers) UserNewPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "user_new.html", nil)
}

// UserCreate handles the add-user form submission
func (h *Handlers) UserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashErr(w, "Error adding user")
		h.redirect(w, r, "/user/new")
		return
	}

	_, err := h.svc.Create(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
	)
	if err != nil {
		var verr *users.ValidationError
		if errors.As(err, &verr) {
			h.flashErr(w, verr.Reason)
		} else {
			log.Error().Err(err).Msg("Failed to add user")
			h.flashErr(w, "Error adding user")
		}
		h.redirect(w, r, "/user/new")
		return
	}

	h.flash(w, "User added successfully")
	h.redirect(w, r, "/user")
}

// UserEditPage renders the rename form for a user
func (h *Handlers) UserEditPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			h.flashErr(w, "User not found")
		} else {
			log.Error().Err(err).Str("user_id", id).Msg("Failed to load user")
			h.flashErr(w, "Error retrieving user")
		}
		h.redirect(w, r, "/user")
		return
	}

	h.render(w, r, "user_edit.html", user)
}

// UserRename handles the rename form submission
func (h *Handlers) UserRename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.flashErr(w, "Error updating user")
		h.redirect(w, r, "/user/"+id+"/edit")
		return
	}

	err := h.svc.Rename(r.Context(), id, r.PostFormValue("password"), r.PostFormValue("username"))
	if err != nil {
		var aerr *users.AuthError
		switch {
		case errors.Is(err, users.ErrNotFound):
			h.flashErr(w, "User not found")
			h.redirect(w, r, "/user")
		case errors.As(err, &aerr):
			h.flashErr(w, aerr.Reason)
			h.redirect(w, r, "/user/"+id+"/edit")
		default:
			log.Error().Err(err).Str("user_id", id).Msg("Failed to update user")
			h.flashErr(w, "Error updating user")
			h.redirect(w, r, "/user/"+id+"/edit")
		}
		return
	}

	h.flash(w, "Username updated successfully")
	h.redirect(w, r, "/user")
}

// UserDeletePage renders the delete confirmation form for a user
func (h *Handlers) UserDeletePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			h.flashErr(w, "User not found")
		} else {
			log.Error().Err(err).Str("user_id", id).Msg("Failed to load user")
			h.flashErr(w, "Error retrieving user")
		}
		h.redirect(w, r, "/user")
		return
	}

	h.render(w, r, "user_delete.html", user)
}

// UserDelete handles the delete confirmation submission
func (h *Handlers) UserDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.flashErr(w, "Error deleting user")
		h.redirect(w, r, "/user/"+id+"/delete")
		return
	}

	err := h.svc.Delete(r.Context(), id, r.PostFormValue("password"), r.PostFormValue("email"))
	if err != nil {
		var aerr *users.AuthError
		switch {
		case errors.Is(err, users.ErrNotFound):
			h.flashErr(w, "User not found")
			h.redirect(w, r, "/user")
		case errors.As(err, &aerr):
			h.flashErr(w, aerr.Reason)
			h.redirect(w, r, "/user/"+id+"/delete")
		default:
			log.Error().Err(err).Str("user_id", id).Msg("Failed to delete user")
			h.flashErr(w, "Error deleting user")
			h.redirect(w, r, "/user/"+id+"/delete")
		}
		return
	}

	h.flash(w, "User deleted successfully")
	h.redirect(w, r, "/user")
}
