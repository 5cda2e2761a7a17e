package repositories

import (
	"context"

	"market-hub.backend/internal/domain/entities"
)

// AuditLogRepository records privileged admin actions
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entities.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error)
}
