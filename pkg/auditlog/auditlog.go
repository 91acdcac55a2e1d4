package auditlog

import (
	"kjejekaj/pkg/models"

	"go.uber.org/zap"
)

type LogPersister interface {
	PersistLog(auditlog models.AuditLog, data interface{}) error
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Auditlog writes best-effort history entries. Failures are logged and
// swallowed so bookkeeping never blocks the request that caused it.
type Auditlog struct {
	r   LogPersister
	log *zap.Logger
}

func NewAuditLog(r LogPersister, log *zap.Logger) *Auditlog {
	return &Auditlog{r: r, log: log}
}

func (a *Auditlog) Log(action string, data interface{}, item Auditable, userID *int) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	auditLog.UserID = userID

	if err := a.r.PersistLog(auditLog, data); err != nil {
		a.log.Warn("Unable to create audit log entry",
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
