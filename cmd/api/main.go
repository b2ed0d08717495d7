package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rewardhub/rewardhub-backend/api/routes"
	"github.com/rewardhub/rewardhub-backend/internal/config"
	"github.com/rewardhub/rewardhub-backend/internal/handlers"
	mongorepo "github.com/rewardhub/rewardhub-backend/internal/repositories/mongodb"
	"github.com/rewardhub/rewardhub-backend/internal/services"
	"github.com/rewardhub/rewardhub-backend/pkg/mongodb"
	"github.com/rewardhub/rewardhub-backend/pkg/smsgateway"
)

func main() {
	// Missing .env is fine in production; config falls back to real env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	accountRepo := mongorepo.NewAccountRepository(db)
	agentCodeRepo := mongorepo.NewAgentCodeRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)
	batchRepo := mongorepo.NewQRBatchRepository(db)
	codeRepo := mongorepo.NewQRCodeRepository(db)
	productRepo := mongorepo.NewRewardProductRepository(db)
	storeRepo := mongorepo.NewStoreLocationRepository(db)
	redemptionRepo := mongorepo.NewRedemptionRepository(db)
	withdrawalRepo := mongorepo.NewWithdrawalRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)
	otpRepo := mongorepo.NewOTPRepository(db)

	// Services
	accountService := services.NewAccountService(accountRepo, agentCodeRepo, activityRepo, redemptionRepo, withdrawalRepo, mongoClient, logger)
	ledgerService := services.NewLedgerService(accountRepo, activityRepo)
	qrService := services.NewQRService(batchRepo, codeRepo, accountRepo, activityRepo, mongoClient, logger)
	catalogService := services.NewCatalogService(productRepo, storeRepo, accountRepo, redemptionRepo, activityRepo, mongoClient, logger)
	workflowService := services.NewWorkflowService(redemptionRepo, withdrawalRepo, accountRepo, activityRepo, mongoClient, logger)
	agentCodeService := services.NewAgentCodeService(agentCodeRepo, logger)
	statsService := services.NewStatsService(accountRepo, batchRepo, agentCodeRepo, redemptionRepo, withdrawalRepo)
	sms := smsgateway.New(cfg, logger)
	authService := services.NewAuthService(accountService, accountRepo, agentCodeRepo, adminUserRepo, otpRepo, sms, cfg, logger)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureSeedAdmin(seedCtx); err != nil {
		logger.Fatal("Failed to seed admin user", zap.Error(err))
	}
	cancel()

	// Handlers
	h := &routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, accountService),
		Account:  handlers.NewAccountHandler(accountService, ledgerService),
		QR:       handlers.NewQRHandler(qrService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Wallet:   handlers.NewWalletHandler(ledgerService, workflowService),
		Workflow: handlers.NewWorkflowHandler(workflowService),
		Admin:    handlers.NewAdminHandler(agentCodeService, statsService),
	}

	router := routes.SetupRouter(cfg, logger, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Info("Server starting", zap.String("port", cfg.Server.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
