// Package http exposes login and role-based route guards over gin.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderstack/inventory-service/internal/domains/users/application"
	"github.com/orderstack/inventory-service/internal/domains/users/domain"
	"github.com/orderstack/inventory-service/internal/domains/users/ports"
	sharederrors "github.com/orderstack/inventory-service/internal/shared/errors"
)

const userContextKey = "authenticated-user"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Handler serves the login endpoint.
type Handler struct {
	service ports.Service
}

func NewHandler(service ports.Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the login route.
func (h *Handler) Register(public gin.IRoutes) {
	public.POST("/login", h.login)
}

func (h *Handler) login(c *gin.Context) {
	var payload loginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	user, err := h.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("invalid credentials"))
			return
		}
		sharederrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Username: user.Username, Role: string(user.Role)})
}

// Authenticate resolves Basic Auth credentials into a user and stores it on
// the request context. Requests without valid credentials get 401.
func Authenticate(service ports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="inventory"`)
			sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("credentials required"))
			c.Abort()
			return
		}
		user, err := service.Login(c.Request.Context(), username, password)
		if err != nil {
			sharederrors.Respond(c, sharederrors.ErrUnauthorized.WithDetail("invalid credentials"))
			c.Abort()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role fails the check.
func RequireRole(check func(domain.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFromContext(c)
		if !ok || !check(user.Role) {
			sharederrors.Respond(c, sharederrors.ErrForbidden.WithDetail("role not permitted"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserFromContext returns the authenticated user set by Authenticate.
func UserFromContext(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
