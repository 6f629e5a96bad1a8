package shared

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"staffrecords/internal/domain/audit"
	"staffrecords/internal/transport/http/middleware"
)

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// RecordAudit stamps the entry with the caller, request id and client IP.
// A failure is logged and never reaches the client.
func RecordAudit(r *http.Request, recorder AuditRecorder, action, entityType string, entityID int64, before, after any) {
	if recorder == nil {
		return
	}
	entry := audit.Entry{
		Action:     action,
		EntityType: entityType,
		EntityID:   strconv.FormatInt(entityID, 10),
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         ClientIP(r),
		Before:     before,
		After:      after,
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		actor := user.AccountID
		entry.ActorID = &actor
	}
	if err := recorder.Record(r.Context(), entry); err != nil {
		slog.Warn("audit record failed", "action", action, "entityType", entityType, "entityId", entityID, "err", err)
	}
}
