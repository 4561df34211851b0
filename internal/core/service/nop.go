package service

import (
	"context"
	"time"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

type nopLimiter struct{}

func (nopLimiter) Allow(context.Context, string, string) (bool, time.Duration, error) {
	return true, 0, nil
}
func (nopLimiter) Failure(context.Context, string, string) error { return nil }
func (nopLimiter) Success(context.Context, string, string) error { return nil }

type nopAudit struct{}

func (nopAudit) Record(domain.AuditEntry) {}
