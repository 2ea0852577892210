package service

import (
	"context"
	"encoding/json"
	"time"

	"coffeeshop/internal/entity"
	"coffeeshop/internal/repository"

	"gorm.io/datatypes"
)

// CleanupService deletes accounts that never verified within the deadline.
// Scheduling is the caller's concern; Run is safe to invoke repeatedly.
type CleanupService struct {
	users        repository.UserRepository
	auditLogs    repository.AuditLogRepository
	clock        Clock
	deadlineDays int
}

func NewCleanupService(
	users repository.UserRepository,
	auditLogs repository.AuditLogRepository,
	clock Clock,
	deadlineDays int,
) *CleanupService {
	if deadlineDays <= 0 {
		deadlineDays = 2
	}
	return &CleanupService{
		users:        users,
		auditLogs:    auditLogs,
		clock:        clock,
		deadlineDays: deadlineDays,
	}
}

// Run performs one sweep and returns the number of accounts deleted. The
// whole sweep is a single batch delete: it either commits fully or fails,
// and a store error is surfaced for the scheduler's next tick to retry.
func (s *CleanupService) Run(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.deadlineDays)

	deleted, err := s.users.DeleteUnverifiedCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if s.auditLogs != nil && deleted > 0 {
		payload, _ := json.Marshal(map[string]any{
			"deleted": deleted,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
		_ = s.auditLogs.Log(ctx, &entity.AuditLog{
			Action:   entity.CleanupRun,
			Metadata: datatypes.JSON(payload),
		})
	}
	return deleted, nil
}

func (s *CleanupService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
