package http

import (
	"net/http"
	"strings"
)

// RouterConfig wires handlers into the route table. RequireSession guards every
// route except authentication (POST /sessions) and self-registration
// (POST /users); Middleware wraps the whole router, outermost first.
type RouterConfig struct {
	Auth           *AuthHandler
	Users          *UserHandler
	Halls          *HallHandler
	Bookings       *BookingHandler
	Notifications  *NotificationHandler
	Settings       *SettingsHandler
	RequireSession func(http.Handler) http.Handler
	Middleware     []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.Handler {
		if cfg.RequireSession == nil {
			return h
		}
		return cfg.RequireSession(h)
	}

	if cfg.Auth != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
		mux.Handle("/sessions/current", protect(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteCurrentSession(w, r)
		}))
	}

	if cfg.Users != nil {
		mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				cfg.Users.Register(w, r)
			case http.MethodGet:
				protect(cfg.Users.List).ServeHTTP(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.Handle("/users/", protect(func(w http.ResponseWriter, r *http.Request) {
			id, sub := splitResourcePath(r.URL.Path, "/users/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithUserID(r.Context(), id))
			switch {
			case sub == "" && r.Method == http.MethodPut:
				cfg.Users.UpdateProfile(w, r)
			case sub == "" && r.Method == http.MethodDelete:
				cfg.Users.Delete(w, r)
			case sub == "password" && r.Method == http.MethodPut:
				cfg.Users.ChangePassword(w, r)
			case sub == "role" && r.Method == http.MethodPut:
				cfg.Users.UpdateRole(w, r)
			case sub == "":
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			case sub == "password" || sub == "role":
				methodNotAllowed(w, http.MethodPut)
			default:
				http.NotFound(w, r)
			}
		}))
	}

	if cfg.Halls != nil {
		mux.Handle("/halls", protect(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Halls.List(w, r)
			case http.MethodPost:
				cfg.Halls.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.Handle("/halls/", protect(func(w http.ResponseWriter, r *http.Request) {
			id, sub := splitResourcePath(r.URL.Path, "/halls/")
			if id == "" || sub != "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithHallID(r.Context(), id))
			switch r.Method {
			case http.MethodPut:
				cfg.Halls.Update(w, r)
			case http.MethodDelete:
				cfg.Halls.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPut, http.MethodDelete)
			}
		}))
	}

	if cfg.Bookings != nil {
		mux.Handle("/bookings", protect(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Bookings.List(w, r)
			case http.MethodPost:
				cfg.Bookings.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.Handle("/bookings/", protect(func(w http.ResponseWriter, r *http.Request) {
			id, sub := splitResourcePath(r.URL.Path, "/bookings/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithBookingID(r.Context(), id))
			switch {
			case sub == "" && r.Method == http.MethodDelete:
				cfg.Bookings.Delete(w, r)
			case sub == "status" && r.Method == http.MethodPut:
				cfg.Bookings.UpdateStatus(w, r)
			case sub == "":
				methodNotAllowed(w, http.MethodDelete)
			case sub == "status":
				methodNotAllowed(w, http.MethodPut)
			default:
				http.NotFound(w, r)
			}
		}))
		mux.Handle("/admin/bookings", protect(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Bookings.AdminCreate(w, r)
		}))
	}

	if cfg.Notifications != nil {
		mux.Handle("/notifications", protect(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Notifications.List(w, r)
		}))
		mux.Handle("/notifications/", protect(func(w http.ResponseWriter, r *http.Request) {
			id, sub := splitResourcePath(r.URL.Path, "/notifications/")
			if id == "" || sub != "read" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			r = r.WithContext(ContextWithNotificationID(r.Context(), id))
			cfg.Notifications.MarkRead(w, r)
		}))
	}

	if cfg.Settings != nil {
		mux.Handle("/settings", protect(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Settings.Get(w, r)
			case http.MethodPut:
				cfg.Settings.Update(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		}))
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// splitResourcePath resolves "/prefix/{id}" and "/prefix/{id}/{sub}" paths.
func splitResourcePath(path, prefix string) (id, sub string) {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path {
		return "", ""
	}
	parts := strings.SplitN(rest, "/", 2)
	id = parts[0]
	if len(parts) == 2 {
		sub = strings.Trim(parts[1], "/")
	}
	return id, sub
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
