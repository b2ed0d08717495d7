package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
)

// The fakes below mirror the conditional-update semantics of the Mongo
// repositories: every guarded mutation checks its precondition and mutates
// under one lock, so concurrency tests exercise the same atomicity the
// real store provides.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[primitive.ObjectID]*models.Account)}
}

var _ repositories.AccountRepository = (*fakeAccountRepo)(nil)

func (r *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID.IsZero() {
		account.ID = primitive.NewObjectID()
	}
	account.CreatedAt = time.Now()
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (r *fakeAccountRepo) FindByPhone(ctx context.Context, phone string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Phone == phone {
			cp := *account
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		cp := *account
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAccountRepo) Search(ctx context.Context, query string, page, limit int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	out := []*models.Account{}
	for _, account := range r.accounts {
		if strings.Contains(strings.ToLower(account.Name), q) || strings.Contains(account.Phone, q) {
			cp := *account
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return apperrors.ErrAccountNotFound
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AccountStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	account.Status = status
	return nil
}

func (r *fakeAccountRepo) CreditPoints(ctx context.Context, id primitive.ObjectID, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	account.Points += points
	account.TotalEarned += points
	return nil
}

func (r *fakeAccountRepo) DebitPoints(ctx context.Context, id primitive.ObjectID, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	if account.Points < points {
		return apperrors.ErrInsufficientPoints
	}
	account.Points -= points
	account.TotalRedeemed += points
	return nil
}

func (r *fakeAccountRepo) ResetPoints(ctx context.Context, id primitive.ObjectID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return 0, apperrors.ErrAccountNotFound
	}
	prior := account.Points
	account.TotalRedeemed += prior
	account.Points = 0
	return prior, nil
}

func (r *fakeAccountRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return apperrors.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.accounts)), nil
}

func (r *fakeAccountRepo) Totals(ctx context.Context) (*repositories.PointsTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	totals := &repositories.PointsTotals{}
	for _, account := range r.accounts {
		totals.Balance += int64(account.Points)
		totals.Earned += int64(account.TotalEarned)
		totals.Redeemed += int64(account.TotalRedeemed)
	}
	return totals, nil
}

type fakeAgentCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*models.AgentCode
}

func newFakeAgentCodeRepo() *fakeAgentCodeRepo {
	return &fakeAgentCodeRepo{codes: make(map[string]*models.AgentCode)}
}

var _ repositories.AgentCodeRepository = (*fakeAgentCodeRepo)(nil)

func (r *fakeAgentCodeRepo) CreateMany(ctx context.Context, codes []*models.AgentCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, code := range codes {
		if code.ID.IsZero() {
			code.ID = primitive.NewObjectID()
		}
		cp := *code
		r.codes[code.Code] = &cp
	}
	return nil
}

func (r *fakeAgentCodeRepo) FindAll(ctx context.Context, page, limit int) ([]*models.AgentCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AgentCode, 0, len(r.codes))
	for _, code := range r.codes {
		cp := *code
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAgentCodeRepo) IsValid(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.codes[code]
	return ok && !stored.Used, nil
}

func (r *fakeAgentCodeRepo) Consume(ctx context.Context, code string, accountID primitive.ObjectID, accountName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.codes[code]
	if !ok || stored.Used {
		return apperrors.ErrInvalidAgentCode
	}
	stored.Used = true
	stored.UsedBy = accountID
	stored.UsedByName = accountName
	return nil
}

func (r *fakeAgentCodeRepo) CountUnused(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, code := range r.codes {
		if !code.Used {
			n++
		}
	}
	return n, nil
}

type fakeQRBatchRepo struct {
	mu      sync.Mutex
	batches map[primitive.ObjectID]*models.QRBatch
}

func newFakeQRBatchRepo() *fakeQRBatchRepo {
	return &fakeQRBatchRepo{batches: make(map[primitive.ObjectID]*models.QRBatch)}
}

var _ repositories.QRBatchRepository = (*fakeQRBatchRepo)(nil)

func (r *fakeQRBatchRepo) Create(ctx context.Context, batch *models.QRBatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if batch.ID.IsZero() {
		batch.ID = primitive.NewObjectID()
	}
	batch.CreatedAt = time.Now()
	cp := *batch
	r.batches[batch.ID] = &cp
	return nil
}

func (r *fakeQRBatchRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.QRBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return nil, apperrors.ErrBatchNotFound
	}
	cp := *batch
	return &cp, nil
}

func (r *fakeQRBatchRepo) FindAll(ctx context.Context, page, limit int) ([]*models.QRBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.QRBatch, 0, len(r.batches))
	for _, batch := range r.batches {
		cp := *batch
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeQRBatchRepo) IncrementRedeemed(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return apperrors.ErrBatchNotFound
	}
	batch.RedeemedCount++
	return nil
}

func (r *fakeQRBatchRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return apperrors.ErrBatchNotFound
	}
	delete(r.batches, id)
	return nil
}

func (r *fakeQRBatchRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.batches)), nil
}

type fakeQRCodeRepo struct {
	mu    sync.Mutex
	codes map[string]*models.QRCode
}

func newFakeQRCodeRepo() *fakeQRCodeRepo {
	return &fakeQRCodeRepo{codes: make(map[string]*models.QRCode)}
}

var _ repositories.QRCodeRepository = (*fakeQRCodeRepo)(nil)

func (r *fakeQRCodeRepo) CreateMany(ctx context.Context, codes []*models.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, code := range codes {
		if code.ID.IsZero() {
			code.ID = primitive.NewObjectID()
		}
		code.CreatedAt = time.Now()
		cp := *code
		r.codes[code.Code] = &cp
	}
	return nil
}

func (r *fakeQRCodeRepo) FindByBatch(ctx context.Context, batchID primitive.ObjectID, page, limit int) ([]*models.QRCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.QRCode, 0)
	for _, code := range r.codes {
		if code.BatchID == batchID {
			cp := *code
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeQRCodeRepo) MarkRedeemed(ctx context.Context, code string, accountID primitive.ObjectID, at time.Time) (*models.QRCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.codes[code]
	if !ok || stored.Status != models.QRStatusPending {
		return nil, apperrors.ErrCodeNotFound
	}
	stored.Status = models.QRStatusRedeemed
	stored.RedeemedBy = accountID
	stored.RedeemedAt = at
	cp := *stored
	return &cp, nil
}

func (r *fakeQRCodeRepo) DeleteByBatch(ctx context.Context, batchID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, code := range r.codes {
		if code.BatchID == batchID {
			delete(r.codes, key)
		}
	}
	return nil
}

func (r *fakeQRCodeRepo) CountByBatchAndStatus(ctx context.Context, batchID primitive.ObjectID, status models.QRStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, code := range r.codes {
		if code.BatchID == batchID && code.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.RewardProduct
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*models.RewardProduct)}
}

var _ repositories.RewardProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(ctx context.Context, product *models.RewardProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RewardProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context) ([]*models.RewardProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.RewardProduct, 0, len(r.products))
	for _, product := range r.products {
		cp := *product
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *models.RewardProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return apperrors.ErrProductNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return apperrors.ErrProductNotFound
	}
	if product.Stock <= 0 {
		return apperrors.ErrOutOfStock
	}
	product.Stock--
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return apperrors.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[primitive.ObjectID]*models.StoreLocation
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[primitive.ObjectID]*models.StoreLocation)}
}

var _ repositories.StoreLocationRepository = (*fakeStoreRepo)(nil)

func (r *fakeStoreRepo) Create(ctx context.Context, store *models.StoreLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if store.ID.IsZero() {
		store.ID = primitive.NewObjectID()
	}
	cp := *store
	r.stores[store.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoreLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, apperrors.ErrStoreNotFound
	}
	cp := *store
	return &cp, nil
}

func (r *fakeStoreRepo) FindAll(ctx context.Context) ([]*models.StoreLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.StoreLocation, 0, len(r.stores))
	for _, store := range r.stores {
		cp := *store
		out = append(out, &cp)
	}
	return out, nil
}

type fakeRedemptionRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*models.RedemptionRequest
}

func newFakeRedemptionRepo() *fakeRedemptionRepo {
	return &fakeRedemptionRepo{requests: make(map[primitive.ObjectID]*models.RedemptionRequest)}
}

var _ repositories.RedemptionRepository = (*fakeRedemptionRepo)(nil)

func (r *fakeRedemptionRepo) Create(ctx context.Context, req *models.RedemptionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRedemptionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RedemptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRedemptionRepo) FindByAccount(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.RedemptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.RedemptionRequest, 0)
	for _, req := range r.requests {
		if req.AccountID == accountID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRedemptionRepo) FindAll(ctx context.Context, page, limit int) ([]*models.RedemptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.RedemptionRequest, 0, len(r.requests))
	for _, req := range r.requests {
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRedemptionRepo) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RedemptionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrRequestNotFound
	}
	if req.Status != from {
		return apperrors.ErrInvalidTransition
	}
	req.Status = to
	return nil
}

func (r *fakeRedemptionRepo) CountByStatus(ctx context.Context, status models.RedemptionStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, req := range r.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeRedemptionRepo) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.requests {
		if req.AccountID == accountID {
			delete(r.requests, id)
		}
	}
	return nil
}

type fakeWithdrawalRepo struct {
	mu       sync.Mutex
	requests map[primitive.ObjectID]*models.WithdrawalRequest
}

func newFakeWithdrawalRepo() *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{requests: make(map[primitive.ObjectID]*models.WithdrawalRequest)}
}

var _ repositories.WithdrawalRepository = (*fakeWithdrawalRepo)(nil)

func (r *fakeWithdrawalRepo) Create(ctx context.Context, req *models.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeWithdrawalRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeWithdrawalRepo) FindByAccount(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.WithdrawalRequest, 0)
	for _, req := range r.requests {
		if req.AccountID == accountID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWithdrawalRepo) FindAll(ctx context.Context, page, limit int) ([]*models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.WithdrawalRequest, 0, len(r.requests))
	for _, req := range r.requests {
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeWithdrawalRepo) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.WithdrawalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrRequestNotFound
	}
	if req.Status != from {
		return apperrors.ErrInvalidTransition
	}
	req.Status = to
	return nil
}

func (r *fakeWithdrawalRepo) CountByStatus(ctx context.Context, status models.WithdrawalStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, req := range r.requests {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeWithdrawalRepo) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.requests {
		if req.AccountID == accountID {
			delete(r.requests, id)
		}
	}
	return nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*models.ActivityEntry
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

var _ repositories.ActivityRepository = (*fakeActivityRepo)(nil)

func (r *fakeActivityRepo) Create(ctx context.Context, entry *models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeActivityRepo) FindByAccount(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.ActivityEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ActivityEntry, 0)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].AccountID == accountID {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.AccountID != accountID {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return nil
}

type fakeAdminUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.AdminUser
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{users: make(map[string]*models.AdminUser)}
}

var _ repositories.AdminUserRepository = (*fakeAdminUserRepo)(nil)

func (r *fakeAdminUserRepo) Create(ctx context.Context, adminUser *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if adminUser.ID.IsZero() {
		adminUser.ID = primitive.NewObjectID()
	}
	cp := *adminUser
	r.users[adminUser.Email] = &cp
	return nil
}

func (r *fakeAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	cp := *user
	return &cp, nil
}

func (r *fakeAdminUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeOTPRepo struct {
	mu         sync.Mutex
	challenges map[string]*models.OTPChallenge
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{challenges: make(map[string]*models.OTPChallenge)}
}

var _ repositories.OTPRepository = (*fakeOTPRepo)(nil)

func (r *fakeOTPRepo) Upsert(ctx context.Context, challenge *models.OTPChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *challenge
	r.challenges[challenge.Phone] = &cp
	return nil
}

func (r *fakeOTPRepo) FindByPhone(ctx context.Context, phone string) (*models.OTPChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	challenge, ok := r.challenges[phone]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	cp := *challenge
	return &cp, nil
}

func (r *fakeOTPRepo) DeleteByPhone(ctx context.Context, phone string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.challenges, phone)
	return nil
}

// fakeSMSGateway records delivered messages so tests can read the OTP back
type fakeSMSGateway struct {
	mu       sync.Mutex
	messages map[string]string // phone -> last message
	fail     bool
}

func newFakeSMSGateway() *fakeSMSGateway {
	return &fakeSMSGateway{messages: make(map[string]string)}
}

func (g *fakeSMSGateway) SendSMS(phone, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return "", context.DeadlineExceeded
	}
	g.messages[phone] = message
	return "msg-1", nil
}

// lastOTP extracts the 6-digit code from the last message sent to phone
func (g *fakeSMSGateway) lastOTP(phone string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	message, ok := g.messages[phone]
	if !ok || len(message) < 6 {
		return ""
	}
	return message[len(message)-6:]
}
