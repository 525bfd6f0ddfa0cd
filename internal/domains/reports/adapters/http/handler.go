// Package http exposes report generation over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderstack/inventory-service/internal/domains/reports/application"
	usershttp "github.com/orderstack/inventory-service/internal/domains/users/adapters/http"
	sharederrors "github.com/orderstack/inventory-service/internal/shared/errors"
)

// Handler serves the report endpoint.
type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the report route on an authenticated group. Which report
// kinds a caller may see depends on their role, so the check happens here
// rather than in route middleware.
func (h *Handler) Register(authenticated gin.IRoutes) {
	authenticated.GET("/reports/:kind", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	kind := c.Param("kind")
	user, ok := usershttp.UserFromContext(c)
	if !ok {
		sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("credentials required"))
		return
	}
	if !user.Role.CanViewReport(kind) {
		sharederrors.Respond(c, sharederrors.ErrForbidden.WithDetail("role not permitted to view this report"))
		return
	}
	report, err := h.service.Generate(c.Request.Context(), kind)
	if err != nil {
		if errors.Is(err, application.ErrUnknownReport) {
			sharederrors.Respond(c, sharederrors.ErrNotFound.WithDetail(err.Error()))
			return
		}
		sharederrors.RespondError(c, err)
		return
	}
	c.String(http.StatusOK, report)
}
