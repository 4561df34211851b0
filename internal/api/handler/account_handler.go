package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/api/metrics"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

// AccountHandler serves account administration and the caller's own account.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Me handles GET /me.
//
// @Summary      Current account
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.AccountWithProfile
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	account, err := h.service.GetAccount(c.Request().Context(), claims, claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateMyProfile handles PUT /me/profile.
//
// @Summary      Update own profile
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /me/profile [put]
func (h *AccountHandler) UpdateMyProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return h.updateProfile(c, claims.ID)
}

// ChangeMyPassword handles PUT /me/password.
//
// @Summary      Change own password
// @Tags         me
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /me/password [put]
func (h *AccountHandler) ChangeMyPassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return h.changePassword(c, claims.ID)
}

// Create handles POST /accounts.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /accounts [post]
func (h *AccountHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.CreateAccount(c.Request().Context(), claims, ports.CreateAccountInput{
		Name:     req.Name,
		Mail:     req.Mail,
		Login:    req.Login,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, account)
}

// List handles GET /accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Partial match on name, login or mail"
// @Param        role    query     string  false  "admin or customer"
// @Param        sort    query     string  false  "id, name, login, mail, created_at; prefix - for descending"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  pageResponse[domain.Account]
// @Failure      403     {object}  errorResponse
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	f, err := listFilter(c)
	if err != nil {
		return err
	}

	page, err := h.service.ListAccounts(c.Request().Context(), claims, ports.ListAccountsFilter{
		ListFilter: f,
		Role:       c.QueryParam("role"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(page))
}

// Get handles GET /accounts/:id.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account ID"
// @Success      200  {object}  domain.AccountWithProfile
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	account, err := h.service.GetAccount(c.Request().Context(), claims, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Update handles PUT /accounts/:id.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Account ID"
// @Param        body  body      updateAccountRequest  true  "Account details"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.UpdateAccount(c.Request().Context(), claims, id, ports.UpdateAccountInput{
		Name:  req.Name,
		Mail:  req.Mail,
		Login: req.Login,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile handles PUT /accounts/:id/profile.
//
// @Summary      Update an account profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Account ID"
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /accounts/{id}/profile [put]
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return h.updateProfile(c, id)
}

// ResetPassword handles PUT /accounts/:id/password.
//
// @Summary      Reset an account password
// @Tags         accounts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                    true  "Account ID"
// @Param        body  body  changePasswordRequest  true  "New password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /accounts/{id}/password [put]
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return h.changePassword(c, id)
}

// Delete handles DELETE /accounts/:id.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        id   path  int  true  "Account ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteAccount(c.Request().Context(), claims, id); err != nil {
		return err
	}
	metrics.SoftDeletesTotal.WithLabelValues("account").Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) updateProfile(c echo.Context, id int64) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), claims, id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *AccountHandler) changePassword(c echo.Context, id int64) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.ChangePassword(c.Request().Context(), claims, id, ports.ChangePasswordInput{
		Current: req.Current,
		New:     req.New,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
