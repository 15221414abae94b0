package audit

import (
	auditRepo "bcal/database/repository/audit"
	"bcal/models"
	"bcal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder appends to the organization's audit log. Failures are logged and
// swallowed so auditing never breaks the action being audited.
type Recorder struct {
	Repo auditRepo.AuditRepository
}

// Record appends one entry.
func (r *Recorder) Record(orgID, actorID, action, targetID string, detail map[string]string) {
	entry := &models.AuditEntry{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		ActorID:        actorID,
		Action:         action,
		TargetID:       targetID,
		Detail:         detail,
	}
	if err := r.Repo.Append(entry); err != nil {
		utils.GetLogger().Error("failed to append audit entry",
			zap.String("action", action),
			zap.String("org_id", orgID),
			zap.Error(err),
		)
	}
}

// List returns the organization's newest entries.
func (r *Recorder) List(orgID string, limit int64) ([]models.AuditEntry, error) {
	return r.Repo.ListByOrg(orgID, limit)
}
