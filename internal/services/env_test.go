package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rewardhub/rewardhub-backend/internal/config"
	"github.com/rewardhub/rewardhub-backend/internal/models"
)

// testEnv wires every service against the in-memory fakes
type testEnv struct {
	accounts    *fakeAccountRepo
	agentCodes  *fakeAgentCodeRepo
	batches     *fakeQRBatchRepo
	codes       *fakeQRCodeRepo
	products    *fakeProductRepo
	stores      *fakeStoreRepo
	redemptions *fakeRedemptionRepo
	withdrawals *fakeWithdrawalRepo
	activity    *fakeActivityRepo
	adminUsers  *fakeAdminUserRepo
	otps        *fakeOTPRepo
	sms         *fakeSMSGateway
	cfg         *config.Config

	accountSvc   *AccountService
	ledgerSvc    *LedgerService
	qrSvc        *QRService
	catalogSvc   *CatalogService
	workflowSvc  *WorkflowService
	agentCodeSvc *AgentCodeService
	statsSvc     *StatsService
	authSvc      *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		accounts:    newFakeAccountRepo(),
		agentCodes:  newFakeAgentCodeRepo(),
		batches:     newFakeQRBatchRepo(),
		codes:       newFakeQRCodeRepo(),
		products:    newFakeProductRepo(),
		stores:      newFakeStoreRepo(),
		redemptions: newFakeRedemptionRepo(),
		withdrawals: newFakeWithdrawalRepo(),
		activity:    newFakeActivityRepo(),
		adminUsers:  newFakeAdminUserRepo(),
		otps:        newFakeOTPRepo(),
		sms:         newFakeSMSGateway(),
		cfg: &config.Config{
			JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
			SMS: config.SMSConfig{OTPExpiry: 300},
			Admin: config.AdminConfig{
				Email:    "admin@example.com",
				Password: "admin-password",
			},
		},
	}

	logger := zap.NewNop()
	txn := NopTxnRunner{}

	env.accountSvc = NewAccountService(env.accounts, env.agentCodes, env.activity, env.redemptions, env.withdrawals, txn, logger)
	env.ledgerSvc = NewLedgerService(env.accounts, env.activity)
	env.qrSvc = NewQRService(env.batches, env.codes, env.accounts, env.activity, txn, logger)
	env.catalogSvc = NewCatalogService(env.products, env.stores, env.accounts, env.redemptions, env.activity, txn, logger)
	env.workflowSvc = NewWorkflowService(env.redemptions, env.withdrawals, env.accounts, env.activity, txn, logger)
	env.agentCodeSvc = NewAgentCodeService(env.agentCodes, logger)
	env.statsSvc = NewStatsService(env.accounts, env.batches, env.agentCodes, env.redemptions, env.withdrawals)
	env.authSvc = NewAuthService(env.accountSvc, env.accounts, env.agentCodes, env.adminUsers, env.otps, env.sms, env.cfg, logger)
	return env
}

// seedAccount creates an active member with the given balance
func (env *testEnv) seedAccount(t *testing.T, name string, points int) *models.Account {
	t.Helper()

	account := &models.Account{
		Phone:         "080" + primitive.NewObjectID().Hex()[16:],
		Name:          name,
		Points:        points,
		TotalEarned:   points,
		Role:          "user",
		Status:        models.AccountStatusActive,
	}
	if err := env.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

// seedAgentCode creates one unused invitation code
func (env *testEnv) seedAgentCode(t *testing.T, code string) {
	t.Helper()

	err := env.agentCodes.CreateMany(context.Background(), []*models.AgentCode{{Code: code}})
	if err != nil {
		t.Fatalf("seed agent code: %v", err)
	}
}

// seedProduct creates one catalog item
func (env *testEnv) seedProduct(t *testing.T, name string, cost, stock int) *models.RewardProduct {
	t.Helper()

	product := &models.RewardProduct{Name: name, PointsCost: cost, Stock: stock}
	if err := env.products.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}
