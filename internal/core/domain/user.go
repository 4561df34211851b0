package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// ValidRole reports whether role is one the system issues tokens for.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}

// Account models a login-capable principal. Rows are never physically erased;
// Deleted flips to true on removal.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Mail         string    `json:"mail"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Deleted      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the customer-only 1:1 extension of an Account.
type Profile struct {
	AccountID  int64     `json:"account_id"`
	Document   string    `json:"document"`
	Phone      string    `json:"phone,omitempty"`
	Street     string    `json:"street,omitempty"`
	Number     string    `json:"number,omitempty"`
	Complement string    `json:"complement,omitempty"`
	District   string    `json:"district,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	ZipCode    string    `json:"zip_code,omitempty"`
	Deleted    bool      `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AccountWithProfile is an account joined with its optional profile.
type AccountWithProfile struct {
	Account
	Profile *Profile `json:"profile,omitempty"`
}
