// Package http exposes order fulfillment over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orderstack/inventory-service/internal/domains/orders/adapters/http/mapper"
	"github.com/orderstack/inventory-service/internal/domains/orders/application"
	"github.com/orderstack/inventory-service/internal/domains/orders/ports"
	sharederrors "github.com/orderstack/inventory-service/internal/shared/errors"
)

// Handler serves the order endpoints.
type Handler struct {
	service ports.Service
	respond *sharederrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service: service,
		respond: sharederrors.NewChainedResponder("", mapOrderError),
	}
}

// Register mounts the order routes on a role-guarded group.
func (h *Handler) Register(orders gin.IRoutes) {
	orders.POST("/orders", h.fulfill)
	orders.GET("/orders", h.listOrders)
	orders.GET("/orders/:id", h.getOrder)
}

func (h *Handler) fulfill(c *gin.Context) {
	var payload mapper.FulfillmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := h.service.Fulfill(c.Request.Context(), mapper.ToDomainRequest(payload))
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(order))
}

func (h *Handler) getOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.respond.Respond(c, sharederrors.ErrBadRequest.WithDetail("order id must be an integer"))
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrderList(orders))
}

func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidRequest):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrCompensationFailure),
		errors.Is(err, application.ErrPersistenceFailure):
		return sharederrors.ErrInternal.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrProductNotFound), errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInsufficientStock):
		return sharederrors.NewInsufficientStockProblem(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
