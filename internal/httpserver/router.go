package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/ovsinka/online_store/internal/middleware/auth"
)

type Deps struct {
	CartHandler    *CartHTTP
	ProductHandler *ProductHTTP
	SearchHandler  *SearchHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.GET("/search", d.SearchHandler.Search)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)

	admin := v1.Group("/admin", authmw.AdminOnly(d.JWTSecret))
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.PATCH("/products/options/:id", d.ProductHandler.PatchOption)
	admin.PUT("/products/stock", d.ProductHandler.UpdateStock)

	cart := v1.Group("/cart", authmw.RequireLogin(d.JWTSecret))
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PUT("", d.CartHandler.UpdateCart)
	cart.DELETE("", d.CartHandler.DeleteFromCart)
}
