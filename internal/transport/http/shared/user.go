package shared

import (
	"net/http"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
)

// RequireUser returns the caller or writes 401.
func RequireUser(w http.ResponseWriter, r *http.Request) (auth.UserContext, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return auth.UserContext{}, false
	}
	return user, true
}

func Forbidden(w http.ResponseWriter, r *http.Request) {
	api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", middleware.GetRequestID(r.Context()))
}

func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	api.Fail(w, http.StatusNotFound, "not_found", message, middleware.GetRequestID(r.Context()))
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	api.Fail(w, http.StatusBadRequest, "bad_request", message, middleware.GetRequestID(r.Context()))
}
