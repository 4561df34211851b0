package ports

import (
	"context"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditSink is a destination the audit dispatcher writes to.
type AuditSink interface {
	Name() string
	Write(ctx context.Context, entry domain.AuditEntry) error
}

// AuditFilter narrows audit queries. Zero values mean "any".
type AuditFilter struct {
	Action     string
	ActorID    int64
	TargetType string
	TargetID   int64
	Limit      int
}

// AuditRepository is the queryable audit store.
type AuditRepository interface {
	AuditSink
	List(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, error)
}

type AuditService interface {
	ListAudit(ctx context.Context, filter AuditFilter) ([]domain.AuditEntry, error)
}
