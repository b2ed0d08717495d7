package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rewardhub/rewardhub-backend/internal/config"
	"github.com/rewardhub/rewardhub-backend/internal/handlers"
	"github.com/rewardhub/rewardhub-backend/internal/middleware"
)

// Handlers bundles the HTTP handlers the router wires up
type Handlers struct {
	Auth     *handlers.AuthHandler
	Account  *handlers.AccountHandler
	QR       *handlers.QRHandler
	Catalog  *handlers.CatalogHandler
	Wallet   *handlers.WalletHandler
	Workflow *handlers.WorkflowHandler
	Admin    *handlers.AdminHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger *zap.Logger, h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/validate-agent-code", h.Auth.ValidateAgentCode)
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/signup/verify", h.Auth.VerifySignup)
			auth.POST("/login", h.Auth.RequestOTP)
			auth.POST("/login/verify", h.Auth.VerifyOTP)
			auth.POST("/admin/login", h.Auth.AdminLogin)
		}
	}

	// Member routes
	member := router.Group("/api/v1")
	member.Use(middleware.JWTAuthMiddleware(cfg))
	{
		member.GET("/me", h.Auth.Me)

		member.POST("/qr/redeem", h.QR.RedeemCode)

		catalog := member.Group("/catalog")
		{
			catalog.GET("/products", h.Catalog.ListProducts)
			catalog.GET("/stores", h.Catalog.ListStores)
			catalog.POST("/redeem", h.Catalog.Redeem)
		}

		wallet := member.Group("/wallet")
		{
			wallet.GET("/activity", h.Wallet.GetActivity)
			wallet.GET("/withdrawals", h.Wallet.ListWithdrawals)
			wallet.POST("/withdrawals", h.Wallet.CreateWithdrawal)
			wallet.GET("/redemptions", h.Wallet.ListRedemptions)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/dashboard", h.Admin.Dashboard)

		accounts := admin.Group("/accounts")
		{
			accounts.GET("", h.Account.ListAccounts)
			accounts.GET("/:id", h.Account.GetAccount)
			accounts.GET("/:id/activity", h.Account.GetAccountActivity)
			accounts.POST("/:id/points/add", h.Account.AddPoints)
			accounts.POST("/:id/points/deduct", h.Account.DeductPoints)
			accounts.POST("/:id/points/reset", h.Account.ResetPoints)
			accounts.POST("/:id/suspend", h.Account.Suspend)
			accounts.POST("/:id/activate", h.Account.Activate)
			accounts.DELETE("/:id", h.Account.DeleteAccount)
		}

		batches := admin.Group("/qr/batches")
		{
			batches.GET("", h.QR.ListBatches)
			batches.POST("", h.QR.CreateBatch)
			batches.GET("/:id", h.QR.GetBatch)
			batches.GET("/:id/codes", h.QR.ListBatchCodes)
			batches.DELETE("/:id", h.QR.DeleteBatch)
		}

		catalog := admin.Group("/catalog")
		{
			catalog.POST("/products", h.Catalog.CreateProduct)
			catalog.PUT("/products/:id", h.Catalog.UpdateProduct)
			catalog.DELETE("/products/:id", h.Catalog.DeleteProduct)
			catalog.POST("/stores", h.Catalog.CreateStore)
		}

		withdrawals := admin.Group("/withdrawals")
		{
			withdrawals.GET("", h.Workflow.ListWithdrawals)
			withdrawals.PUT("/:id/status", h.Workflow.UpdateWithdrawalStatus)
		}

		redemptions := admin.Group("/redemptions")
		{
			redemptions.GET("", h.Workflow.ListRedemptions)
			redemptions.PUT("/:id/status", h.Workflow.UpdateRedemptionStatus)
		}

		agentCodes := admin.Group("/agent-codes")
		{
			agentCodes.GET("", h.Admin.ListAgentCodes)
			agentCodes.POST("", h.Admin.GenerateAgentCodes)
		}
	}

	return router
}
