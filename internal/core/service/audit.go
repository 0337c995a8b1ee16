package service

import (
	"time"

	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

// emit records an audit event when a sink is configured.
func emit(sink ports.AuditSink, now func() time.Time, action domain.AuditAction, subjectID, actorID string) {
	if sink == nil {
		return
	}
	sink.Emit(domain.AuditEvent{
		Action:    action,
		SubjectID: subjectID,
		ActorID:   actorID,
		At:        now().UTC(),
	})
}

// validID rejects malformed ids before they reach a repository.
func validID(id string) error {
	if !domain.IsValidID(id) {
		return domain.ErrInvalidID
	}
	return nil
}
