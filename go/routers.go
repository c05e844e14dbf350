package ezserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the generated Route.
type Routes []Route

// ApiHandleFunctions groups the API handlers per context.
type ApiHandleFunctions struct {
	CartAPI    CartAPI
	ProductAPI ProductAPI
	UserAPI    UserAPI
}

// NewRouter returns a new router with all registered routes.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds all routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultFunc(c *gin.Context) {}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"GetCart",
			http.MethodGet,
			"/ezelectronics/carts",
			handleFunctions.CartAPI.GetCart,
		},
		{
			"AddToCart",
			http.MethodPost,
			"/ezelectronics/carts",
			handleFunctions.CartAPI.AddToCart,
		},
		{
			"CheckoutCart",
			http.MethodPatch,
			"/ezelectronics/carts",
			handleFunctions.CartAPI.Checkout,
		},
		{
			"GetCartHistory",
			http.MethodGet,
			"/ezelectronics/carts/history",
			handleFunctions.CartAPI.GetCartHistory,
		},
		{
			"RemoveProductFromCart",
			http.MethodDelete,
			"/ezelectronics/carts/products/:model",
			handleFunctions.CartAPI.RemoveProductFromCart,
		},
		{
			"ClearCart",
			http.MethodDelete,
			"/ezelectronics/carts/current",
			handleFunctions.CartAPI.ClearCart,
		},
		{
			"GetAllCarts",
			http.MethodGet,
			"/ezelectronics/carts/all",
			handleFunctions.CartAPI.GetAllCarts,
		},
		{
			"DeleteAllCarts",
			http.MethodDelete,
			"/ezelectronics/carts",
			handleFunctions.CartAPI.DeleteAllCarts,
		},
		{
			"RegisterArrival",
			http.MethodPost,
			"/ezelectronics/products",
			handleFunctions.ProductAPI.RegisterArrival,
		},
		{
			"ChangeProductQuantity",
			http.MethodPatch,
			"/ezelectronics/products/:model",
			handleFunctions.ProductAPI.ChangeQuantity,
		},
		{
			"SellProduct",
			http.MethodPatch,
			"/ezelectronics/products/:model/sell",
			handleFunctions.ProductAPI.Sell,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/ezelectronics/products",
			handleFunctions.ProductAPI.ListProducts,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/ezelectronics/products/:model",
			handleFunctions.ProductAPI.GetProduct,
		},
		{
			"DeleteProduct",
			http.MethodDelete,
			"/ezelectronics/products/:model",
			handleFunctions.ProductAPI.DeleteProduct,
		},
		{
			"DeleteAllProducts",
			http.MethodDelete,
			"/ezelectronics/products",
			handleFunctions.ProductAPI.DeleteAllProducts,
		},
		{
			"CreateUser",
			http.MethodPost,
			"/ezelectronics/users",
			handleFunctions.UserAPI.CreateUser,
		},
		{
			"GetUserByName",
			http.MethodGet,
			"/ezelectronics/users/:username",
			handleFunctions.UserAPI.GetUserByName,
		},
		{
			"UpdateUser",
			http.MethodPatch,
			"/ezelectronics/users/:username",
			handleFunctions.UserAPI.UpdateUser,
		},
		{
			"DeleteUser",
			http.MethodDelete,
			"/ezelectronics/users/:username",
			handleFunctions.UserAPI.DeleteUser,
		},
		{
			"Login",
			http.MethodPost,
			"/ezelectronics/sessions",
			handleFunctions.UserAPI.Login,
		},
		{
			"Logout",
			http.MethodDelete,
			"/ezelectronics/sessions/current",
			handleFunctions.UserAPI.Logout,
		},
	}
}
