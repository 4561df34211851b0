package domain

import "time"

// Audit actions recorded for access-control relevant events.
const (
	AuditLoginSucceeded   = "login.succeeded"
	AuditLoginFailed      = "login.failed"
	AuditLoginThrottled   = "login.throttled"
	AuditCustomerRegister = "customer.registered"
	AuditAccountCreated   = "account.created"
	AuditAccountDeleted   = "account.deleted"
	AuditPasswordChanged  = "account.password_changed"
	AuditProductDeleted   = "product.deleted"
	AuditStockDeleted     = "stock.deleted"
)

// AuditEntry is a single append-only audit record.
type AuditEntry struct {
	Action     string            `json:"action" bson:"action"`
	ActorID    int64             `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	Login      string            `json:"login,omitempty" bson:"login,omitempty"`
	TargetType string            `json:"target_type,omitempty" bson:"target_type,omitempty"`
	TargetID   int64             `json:"target_id,omitempty" bson:"target_id,omitempty"`
	Meta       map[string]string `json:"meta,omitempty" bson:"meta,omitempty"`
	At         time.Time         `json:"at" bson:"at"`
}
