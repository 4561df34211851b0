package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

const auditCollection = "audit_log"

// AuditRepository stores audit entries in MongoDB. It is both a dispatcher
// sink and the store behind GET /admin/audit.
type AuditRepository struct {
	db *mongo.Database
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Name() string { return "mongo" }

// Write appends an entry to the audit_log collection.
func (r *AuditRepository) Write(ctx context.Context, entry domain.AuditEntry) error {
	entry.At = entry.At.UTC()
	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns the most recent entries matching f, newest first.
func (r *AuditRepository) List(ctx context.Context, f ports.AuditFilter) ([]domain.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(f.Limit))

	cur, err := r.db.Collection(auditCollection).Find(ctx, auditQuery(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	out := []domain.AuditEntry{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return out, nil
}

func auditQuery(f ports.AuditFilter) bson.M {
	q := bson.M{}
	if f.Action != "" {
		q["action"] = f.Action
	}
	if f.ActorID != 0 {
		q["actor_id"] = f.ActorID
	}
	if f.TargetType != "" {
		q["target_type"] = f.TargetType
	}
	if f.TargetID != 0 {
		q["target_id"] = f.TargetID
	}
	return q
}
