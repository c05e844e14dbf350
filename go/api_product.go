package ezserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	productapp "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/application"
	productdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/domain"
	productports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/products/ports"
	userdomain "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/domain"
	userports "github.com/LienoPC/EZ-Electronics-sub000/internal/domains/users/ports"
)

// ProductAPI wires HTTP transport with the catalog bounded context.
type ProductAPI struct {
	service productports.Service
	users   userports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productports.Service, users userports.Service) ProductAPI {
	return ProductAPI{service: service, users: users}
}

// Product is the transport-layer shape serialized by the catalog handlers.
type Product struct {
	Model        string  `json:"model"`
	Category     string  `json:"category"`
	Quantity     int32   `json:"quantity"`
	Details      string  `json:"details,omitempty"`
	SellingPrice float64 `json:"sellingPrice"`
	ArrivalDate  string  `json:"arrivalDate,omitempty"`
}

type quantityChangeRequest struct {
	Quantity int32 `json:"quantity" binding:"required"`
}

const arrivalDateLayout = "2006-01-02"

func fromDomainProduct(product *productdomain.Product) Product {
	out := Product{
		Model:        product.Model,
		Category:     string(product.Category),
		Quantity:     product.Quantity,
		Details:      product.Details,
		SellingPrice: product.SellingPrice,
	}
	if !product.ArrivalDate.IsZero() {
		out.ArrivalDate = product.ArrivalDate.Format(arrivalDateLayout)
	}
	return out
}

func (p Product) toDomain() (*productdomain.Product, error) {
	var arrival time.Time
	if p.ArrivalDate != "" {
		parsed, err := time.Parse(arrivalDateLayout, p.ArrivalDate)
		if err != nil {
			return nil, err
		}
		arrival = parsed
	}
	return productdomain.NewProduct(p.Model, productdomain.Category(p.Category), p.Quantity, p.Details, p.SellingPrice, arrival)
}

// Post /ezelectronics/products
// Register an arrival of a new product model
func (api *ProductAPI) RegisterArrival(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleManager) {
		return
	}
	var payload Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := payload.toDomain()
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, err)
		return
	}
	saved, err := api.service.RegisterArrival(c.Request.Context(), product)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(saved))
}

// Patch /ezelectronics/products/:model
// Increase the stock of an existing model
func (api *ProductAPI) ChangeQuantity(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleManager) {
		return
	}
	var payload quantityChangeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.ChangeQuantity(c.Request.Context(), c.Param("model"), payload.Quantity)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(product))
}

// Patch /ezelectronics/products/:model/sell
// Record a direct sale, decreasing stock
func (api *ProductAPI) Sell(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleManager) {
		return
	}
	var payload quantityChangeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.Sell(c.Request.Context(), c.Param("model"), payload.Quantity)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(product))
}

// Get /ezelectronics/products
// Full catalog, optionally filtered by category
func (api *ProductAPI) ListProducts(c *gin.Context) {
	if _, ok := authenticate(c, api.users); !ok {
		return
	}
	products, err := api.service.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondProductError(c, err)
		return
	}
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, fromDomainProduct(product))
	}
	c.JSON(http.StatusOK, out)
}

// Get /ezelectronics/products/:model
// Single catalog entry
func (api *ProductAPI) GetProduct(c *gin.Context) {
	if _, ok := authenticate(c, api.users); !ok {
		return
	}
	product, err := api.service.GetByModel(c.Request.Context(), c.Param("model"))
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainProduct(product))
}

// Delete /ezelectronics/products/:model
// Remove a model from the catalog
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleManager) {
		return
	}
	if err := api.service.Delete(c.Request.Context(), c.Param("model")); err != nil {
		respondProductError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete /ezelectronics/products
// Purge the whole catalog
func (api *ProductAPI) DeleteAllProducts(c *gin.Context) {
	user, ok := authenticate(c, api.users)
	if !ok || !requireRole(c, user, userdomain.RoleAdmin) {
		return
	}
	if err := api.service.DeleteAll(c.Request.Context()); err != nil {
		respondProductError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func respondProductError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, productports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, productports.ErrAlreadyExists),
		errors.Is(err, productports.ErrLowStock):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, productapp.ErrInvalidInput):
		respondError(c, http.StatusUnprocessableEntity, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
