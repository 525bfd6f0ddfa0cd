// Package http exposes catalog maintenance over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orderstack/inventory-service/internal/domains/catalog/adapters/http/mapper"
	"github.com/orderstack/inventory-service/internal/domains/catalog/application"
	"github.com/orderstack/inventory-service/internal/domains/catalog/ports"
	sharederrors "github.com/orderstack/inventory-service/internal/shared/errors"
)

// Handler serves the product endpoints.
type Handler struct {
	service ports.Service
	respond *sharederrors.ChainedResponder
}

func NewHandler(service ports.Service) *Handler {
	return &Handler{
		service: service,
		respond: sharederrors.NewChainedResponder("", mapCatalogError),
	}
}

// Register mounts the product routes. Mutating routes are expected to be
// guarded by role middleware on the surrounding group.
func (h *Handler) Register(public, manage gin.IRoutes) {
	public.GET("/products", h.listProducts)
	public.GET("/products/:id", h.getProduct)
	manage.POST("/products", h.addProduct)
	manage.POST("/products/:id/restock", h.restock)
}

func (h *Handler) addProduct(c *gin.Context) {
	var payload mapper.CreateProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := h.service.AddProduct(c.Request.Context(), payload.Description, payload.Price, payload.InitialStock)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainProduct(product))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := productID(c, h.respond)
	if !ok {
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProductList(products))
}

func (h *Handler) restock(c *gin.Context) {
	id, ok := productID(c, h.respond)
	if !ok {
		return
	}
	var payload mapper.RestockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respond.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := h.service.Restock(c.Request.Context(), id, payload.Quantity)
	if err != nil {
		h.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

func productID(c *gin.Context, respond *sharederrors.ChainedResponder) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Respond(c, sharederrors.ErrBadRequest.WithDetail("product id must be an integer"))
		return 0, false
	}
	return id, true
}

func mapCatalogError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput),
		errors.Is(err, application.ErrInvalidQuantity):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
