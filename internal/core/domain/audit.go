package domain

import "time"

// AuditAction names a state change recorded on the audit stream.
type AuditAction string

const (
	AuditAdminCreated        AuditAction = "admin.created"
	AuditAdminUpdated        AuditAction = "admin.updated"
	AuditAdminPasswordChange AuditAction = "admin.password_changed"
	AuditAdminPasswordReset  AuditAction = "admin.password_reset"
	AuditAdminDeleted        AuditAction = "admin.deleted"
	AuditUserDeleted         AuditAction = "user.deleted"
	AuditAccountDeleted      AuditAction = "account.deleted"
	AuditStockDeleted        AuditAction = "stock.deleted"
	AuditItemDeleted         AuditAction = "item.deleted"
)

// AuditEvent records who changed what.
type AuditEvent struct {
	Action    AuditAction `json:"action"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id"`
	At        time.Time   `json:"at"`
}
