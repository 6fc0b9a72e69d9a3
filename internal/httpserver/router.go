package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Guest-Token")
	if err := corsCfg.Validate(); err != nil {
		return nil, err
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.POST("/auth/guest", guestHandler(deps.Guests))
	api.POST("/auth/signup", signupHandler(deps.Auth))
	api.POST("/auth/login", loginHandler(deps.Auth, deps.Guests, deps.Cart, logger))

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:id", getProductHandler(deps.Catalog))

	admin := api.Group("/admin", requireUser(deps.Auth), requireAdmin())
	admin.POST("/products", upsertProductHandler(deps.Catalog))
	admin.DELETE("/products/:id", deactivateProductHandler(deps.Catalog))

	carts := api.Group("/cart", resolveOwner(deps.Auth, deps.Guests))
	carts.GET("", getCartHandler(deps.Cart))
	carts.POST("", addCartHandler(deps.Cart))
	carts.PATCH("/:id", updateCartHandler(deps.Cart))
	carts.DELETE("/:id", removeCartHandler(deps.Cart))
	carts.DELETE("", clearCartHandler(deps.Cart))

	co := api.Group("/checkout", resolveOwner(deps.Auth, deps.Guests))
	co.POST("/whatsapp", whatsAppCheckoutHandler(deps.Checkout))
	co.POST("", placeOrderHandler(deps.Checkout))
	co.POST("/:id/confirm", confirmOrderHandler(deps.Checkout))

	api.GET("/orders", requireUser(deps.Auth), ordersHandler(deps.Checkout))

	return router, nil
}
