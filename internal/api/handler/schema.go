package handler

import (
	"time"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *domain.Account `json:"account"`
}

type profileRequest struct {
	Document   string `json:"document"   validate:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"      validate:"omitempty,max=2"`
	ZipCode    string `json:"zip_code"`
}

func (r profileRequest) input() ports.ProfileInput {
	return ports.ProfileInput{
		Document:   r.Document,
		Phone:      r.Phone,
		Street:     r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.District,
		City:       r.City,
		State:      r.State,
		ZipCode:    r.ZipCode,
	}
}

type registerRequest struct {
	Name     string         `json:"name"     validate:"required"`
	Mail     string         `json:"mail"     validate:"required,email"`
	Login    string         `json:"login"    validate:"required"`
	Password string         `json:"password" validate:"required,min=8,max=72"`
	Profile  profileRequest `json:"profile"  validate:"required"`
}

// --- Accounts ---

type createAccountRequest struct {
	Name     string `json:"name"     validate:"required"`
	Mail     string `json:"mail"     validate:"required,email"`
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=admin customer"`
}

type updateAccountRequest struct {
	Name  string `json:"name"  validate:"required"`
	Mail  string `json:"mail"  validate:"required,email"`
	Login string `json:"login" validate:"required"`
}

type changePasswordRequest struct {
	Current string `json:"current_password"`
	New     string `json:"new_password" validate:"required,min=8,max=72"`
}

// --- Catalog ---

type productRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
}

func (r productRequest) input() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		PriceCents:  r.PriceCents,
	}
}

type stockRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity"   validate:"gte=0"`
	Location  string `json:"location"`
}

func (r stockRequest) input() ports.StockInput {
	return ports.StockInput{ProductID: r.ProductID, Quantity: r.Quantity, Location: r.Location}
}

type updateStockRequest struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location"`
}

// --- Lists ---

type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPageResponse[T any](p *ports.Page[T]) pageResponse[T] {
	return pageResponse[T]{
		Items:      p.Items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}
