package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/handlers"
	mwauth "github.com/mashop/storefront/internal/middleware/auth"
)

type Deps struct {
	DB              *gorm.DB
	AuthHandler     *handlers.AuthHandler
	ProductsHandler *handlers.ProductsHandler
	CartHandler     *handlers.CartHandler
	WishlistHandler *handlers.WishlistHandler
	AdminHandler    *handlers.AdminHandler
	Session         *mwauth.SessionMiddleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/logout", d.AuthHandler.Logout, d.Session.RequireLogin)
	v1.POST("/refresh", d.AuthHandler.Refresh, d.Session.RequireLogin)
	v1.GET("/me", d.AuthHandler.Me, d.Session.RequireLogin)

	products := v1.Group("/products")
	products.GET("", d.ProductsHandler.GetProducts)
	products.GET("/search", d.ProductsHandler.SearchProducts)
	products.GET("/category/:category", d.ProductsHandler.GetProductsByCategory)
	products.GET("/:id", d.ProductsHandler.GetProduct)

	v1.GET("/categories", d.ProductsHandler.GetCategories)

	cart := v1.Group("/cart", d.Session.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:productId", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:productId", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.POST("/checkout", d.CartHandler.Checkout)

	v1.GET("/orders", d.CartHandler.GetOrders, d.Session.RequireLogin)

	wishlist := v1.Group("/wishlist", d.Session.RequireLogin)
	wishlist.GET("", d.WishlistHandler.GetWishlist)
	wishlist.POST("", d.WishlistHandler.AddToWishlist)
	wishlist.GET("/:productId", d.WishlistHandler.Contains)
	wishlist.DELETE("/:productId", d.WishlistHandler.RemoveFromWishlist)

	admin := v1.Group("/admin", d.Session.AdminOnly)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", d.AdminHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)
	admin.GET("/users", d.AdminHandler.GetUsers)
	admin.GET("/users/:id", d.AdminHandler.GetUser)
	admin.POST("/users", d.AdminHandler.CreateUser)
	admin.PUT("/users/:id", d.AdminHandler.UpdateUser)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)
	admin.GET("/users/:id/carts", d.AdminHandler.GetUserCarts)
	admin.GET("/users/:id/posts", d.AdminHandler.GetUserPosts)
	admin.GET("/users/:id/todos", d.AdminHandler.GetUserTodos)
	admin.GET("/carts", d.AdminHandler.GetCarts)
	admin.GET("/carts/user/:id", d.AdminHandler.GetCartsByUser)
	admin.GET("/carts/:id", d.AdminHandler.GetCart)
	admin.POST("/carts", d.AdminHandler.CreateCart)
	admin.PUT("/carts/:id", d.AdminHandler.UpdateCart)
	admin.DELETE("/carts/:id", d.AdminHandler.DeleteCart)
	admin.GET("/activity", d.AdminHandler.GetActivity)
}
