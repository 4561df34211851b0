package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/domain"
	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /admin/audit.
//
// @Summary      Query the audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        action       query     string  false  "Action (e.g. login.failed)"
// @Param        actor_id     query     int     false  "Acting account ID"
// @Param        target_type  query     string  false  "account, product or stock"
// @Param        target_id    query     int     false  "Target ID"
// @Param        limit        query     int     false  "Max entries (default 50, max 500)"
// @Success      200          {array}   domain.AuditEntry
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /admin/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	var f ports.AuditFilter
	err := echo.QueryParamsBinder(c).
		String("action", &f.Action).
		Int64("actor_id", &f.ActorID).
		String("target_type", &f.TargetType).
		Int64("target_id", &f.TargetID).
		Int("limit", &f.Limit).
		BindError()
	if err != nil {
		return domain.Validationf("actor_id, target_id and limit must be integers")
	}

	entries, err := h.service.ListAudit(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
