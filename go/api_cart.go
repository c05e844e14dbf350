package ezserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/adapters/http/mapper"
	cartapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/application"
	cartdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/domain"
	cartports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/cart/ports"
	userdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	userports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

// CartAPI wires HTTP transport with the cart bounded context service and
// the checkout workflow orchestrator.
type CartAPI struct {
	service   cartports.Service
	workflows cartports.WorkflowOrchestrator
	users     userports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service, workflows cartports.WorkflowOrchestrator, users userports.Service) CartAPI {
	return CartAPI{service: service, workflows: workflows, users: users}
}

type addToCartRequest struct {
	Model string `json:"model" binding:"required"`
}

// Get /ezelectronics/carts
// Current unpaid cart of the logged-in customer
func (api *CartAPI) GetCart(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleCustomer) {
		return
	}
	cart, err := api.service.GetCart(c.Request.Context(), user.Username)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Post /ezelectronics/carts
// Add one unit of a product to the current cart
func (api *CartAPI) AddToCart(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleCustomer) {
		return
	}
	var payload addToCartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	cart, err := api.service.AddToCart(c.Request.Context(), user.Username, payload.Model)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Patch /ezelectronics/carts
// Pay for the current cart
func (api *CartAPI) Checkout(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleCustomer) {
		return
	}
	cart, err := api.checkout(c.Request.Context(), user.Username)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

func (api *CartAPI) checkout(ctx context.Context, customerID string) (*cartdomain.Cart, error) {
	if api.workflows != nil {
		return api.workflows.Checkout(ctx, customerID)
	}
	return api.service.Checkout(ctx, customerID)
}

// Get /ezelectronics/carts/history
// Paid carts of the logged-in customer
func (api *CartAPI) GetCartHistory(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleCustomer) {
		return
	}
	carts, err := api.service.GetCustomerCarts(c.Request.Context(), user.Username)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCarts(carts))
}

// Delete /ezelectronics/carts/products/:model
// Remove one unit of a product from the current cart
func (api *CartAPI) RemoveProductFromCart(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleCustomer) {
		return
	}
	model := c.Param("model")
	cart, err := api.service.RemoveProductFromCart(c.Request.Context(), user.Username, model)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Delete /ezelectronics/carts/current
// Empty the current cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleCustomer) {
		return
	}
	cart, err := api.service.ClearCart(c.Request.Context(), user.Username)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Get /ezelectronics/carts/all
// Every cart in the system, paid and unpaid
func (api *CartAPI) GetAllCarts(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleManager) {
		return
	}
	carts, err := api.service.GetAllCarts(c.Request.Context())
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCarts(carts))
}

// Delete /ezelectronics/carts
// Purge all carts
func (api *CartAPI) DeleteAllCarts(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleAdmin) {
		return
	}
	if err := api.service.DeleteAllCarts(c.Request.Context()); err != nil {
		respondCartError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func respondCartError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, cartports.ErrCartNotFound),
		errors.Is(err, cartports.ErrProductNotInCart),
		errors.Is(err, cartports.ErrProductNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, cartports.ErrEmptyCart),
		errors.Is(err, cartports.ErrEmptyProductStock),
		errors.Is(err, cartports.ErrInsufficientStock),
		errors.Is(err, cartports.ErrStockConflict):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, cartapp.ErrInvalidInput):
		respondError(c, http.StatusUnprocessableEntity, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
