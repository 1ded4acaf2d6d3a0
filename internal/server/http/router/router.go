package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/encryptSIM/backend/internal/server/http/handlers"
	"github.com/encryptSIM/backend/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ShopFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	profileHandler := handlers.NewProfileHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	simHandler := handlers.NewSimHandler(facade)
	couponHandler := handlers.NewCouponHandler(facade)
	cacheHandler := handlers.NewCacheHandler(facade)
	opsHandler := handlers.NewOpsHandler(facade)

	engine.POST("/create-payment-profile", profileHandler.Create)

	engine.POST("/order", orderHandler.Create)
	engine.GET("/order/:orderId", orderHandler.Query)
	engine.POST("/topup", orderHandler.CreateTopup)
	engine.GET("/topup/:orderId", orderHandler.Query)
	engine.GET("/payment-profile/sim/:ppPublicKey", orderHandler.ListByProfile)
	engine.GET("/payment-profile/topup/:ppPublicKey", orderHandler.ListTopupsByProfile)

	engine.GET("/packages", catalogHandler.Packages)
	engine.GET("/sim/:iccid/topups", catalogHandler.SimTopups)
	engine.GET("/sim/:iccid/usage", catalogHandler.SimUsage)

	engine.POST("/complete-order", simHandler.CompleteOrder)
	engine.POST("/mark-sim-installed", simHandler.MarkInstalled)
	engine.GET("/fetch-sims/:id", simHandler.FetchSims)
	engine.GET("/sim-usage/:iccid", simHandler.UsageGet)
	engine.POST("/sim-usage/:iccid", simHandler.UsageSet)

	engine.GET("/coupon/:code", couponHandler.Get)
	engine.POST("/coupon/:code/redeem", couponHandler.Redeem)

	engine.GET("/cache/:key", cacheHandler.Get)
	engine.POST("/cache/:key", cacheHandler.Set)
	engine.DELETE("/cache/:key", cacheHandler.Delete)

	engine.GET("/health", opsHandler.Health)
	engine.POST("/error", opsHandler.LogError)

	return engine
}
