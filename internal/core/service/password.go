package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
)

const (
	minPasswordLen = 8
	// bcrypt refuses inputs longer than this.
	maxPasswordLen = 72
)

// normalizeCost keeps the bcrypt work factor at or above the default (10).
func normalizeCost(cost int) int {
	if cost < bcrypt.DefaultCost {
		return bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}

func checkPassword(pw string) error {
	if len(pw) < minPasswordLen {
		return domain.Validationf("password must be at least %d characters", minPasswordLen)
	}
	if len(pw) > maxPasswordLen {
		return domain.Validationf("password must be at most %d bytes", maxPasswordLen)
	}
	return nil
}

func hashPassword(pw string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
