package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a customer account together with its profile.
//
// @Summary      Register a customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer account and profile"
// @Success      201   {object}  domain.AccountWithProfile
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.authService.RegisterCustomer(c.Request().Context(), ports.RegisterCustomerInput{
		Name:     req.Name,
		Mail:     req.Mail,
		Login:    req.Login,
		Password: req.Password,
		Profile:  req.Profile.input(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, account)
}

// Login authenticates an account and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Authenticate(c.Request().Context(), ports.LoginInput{
		Login:    req.Login,
		Password: req.Password,
		IP:       c.RealIP(),
	})
	metrics.AuthAttemptsTotal.WithLabelValues(attemptResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, Account: res.Account})
}

func attemptResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid"
	case errors.Is(err, domain.ErrRateLimited):
		return "throttled"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	default:
		return "error"
	}
}
