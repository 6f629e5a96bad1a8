package shared

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"staffrecords/internal/domain/core"
	"staffrecords/internal/transport/http/api"
	"staffrecords/internal/transport/http/middleware"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// WriteError maps errors no handler recognised. Constraint violations become
// 409, a failed multi-step write names its step, and everything else is a
// 500 whose message never includes store text.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			api.Fail(w, http.StatusConflict, "conflict", "a record with the same unique value already exists", requestID)
			return
		case pgForeignKeyViolation:
			api.Fail(w, http.StatusConflict, "conflict", "the record is referenced by or references missing data", requestID)
			return
		}
	}
	if errors.Is(err, ErrInvalidBody) {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", requestID)
		return
	}

	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"requestId", requestID,
		"err", err,
	)

	var step *core.StepError
	if errors.As(err, &step) {
		api.Fail(w, http.StatusInternalServerError, "internal_error", fmt.Sprintf("%s failed at step %s; no changes were saved", step.Op, step.Step), requestID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
}
