package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/config"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"github.com/rewardhub/rewardhub-backend/internal/utils"
	"github.com/rewardhub/rewardhub-backend/pkg/smsgateway"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles member signup/login via phone OTP and admin login via
// email and password. Suspended accounts are blocked at OTP request time
// and again at verification, so suspension takes effect immediately.
type AuthService struct {
	accountService *AccountService
	accountRepo    repositories.AccountRepository
	agentCodeRepo  repositories.AgentCodeRepository
	adminUserRepo  repositories.AdminUserRepository
	otpRepo        repositories.OTPRepository
	sms            smsgateway.Gateway
	cfg            *config.Config
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accountService *AccountService,
	accountRepo repositories.AccountRepository,
	agentCodeRepo repositories.AgentCodeRepository,
	adminUserRepo repositories.AdminUserRepository,
	otpRepo repositories.OTPRepository,
	sms smsgateway.Gateway,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountService: accountService,
		accountRepo:    accountRepo,
		agentCodeRepo:  agentCodeRepo,
		adminUserRepo:  adminUserRepo,
		otpRepo:        otpRepo,
		sms:            sms,
		cfg:            cfg,
		logger:         logger,
	}
}

// ValidateAgentCode reports only whether the code can still be used. The
// boolean is the entire answer; nothing about the code table leaks out.
func (s *AuthService) ValidateAgentCode(ctx context.Context, code string) (bool, error) {
	return s.agentCodeRepo.IsValid(ctx, utils.NormalizeCode(code))
}

// BeginSignup validates the agent code and sends an OTP to the phone. No
// account exists yet; the code is consumed only at verification.
func (s *AuthService) BeginSignup(ctx context.Context, req *models.SignupRequest) error {
	valid, err := s.agentCodeRepo.IsValid(ctx, utils.NormalizeCode(req.AgentCode))
	if err != nil {
		return err
	}
	if !valid {
		return apperrors.ErrInvalidAgentCode
	}

	if _, err := s.accountRepo.FindByPhone(ctx, req.Phone); err == nil {
		return apperrors.ErrDuplicatePhone
	} else if err != apperrors.ErrAccountNotFound {
		return err
	}

	return s.sendOTP(ctx, req.Phone)
}

// CompleteSignup verifies the OTP, creates the account (consuming the agent
// code), and returns a bearer token.
func (s *AuthService) CompleteSignup(ctx context.Context, req *models.VerifySignupRequest) (string, *models.Account, error) {
	if err := s.verifyOTP(ctx, req.Phone, req.OTP); err != nil {
		return "", nil, err
	}

	account, err := s.accountService.CreateAccount(ctx, req.Phone, req.Name, req.AgentCode)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(account.ID.Hex(), account.Role, s.cfg)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// BeginLogin sends an OTP to a registered, active phone
func (s *AuthService) BeginLogin(ctx context.Context, phone string) error {
	account, err := s.accountRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if account.Status == models.AccountStatusSuspended {
		return apperrors.ErrAccountSuspended
	}
	return s.sendOTP(ctx, phone)
}

// CompleteLogin verifies the OTP and returns a bearer token
func (s *AuthService) CompleteLogin(ctx context.Context, phone, otp string) (string, *models.Account, error) {
	account, err := s.accountRepo.FindByPhone(ctx, phone)
	if err != nil {
		return "", nil, err
	}
	if account.Status == models.AccountStatusSuspended {
		return "", nil, apperrors.ErrAccountSuspended
	}
	if err := s.verifyOTP(ctx, phone, otp); err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateJWT(account.ID.Hex(), account.Role, s.cfg)
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// AdminLogin authenticates a staff account and returns an admin token
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (string, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.Password), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	return utils.GenerateJWT(adminUser.ID.Hex(), "admin", s.cfg)
}

// EnsureSeedAdmin creates the configured admin account when none exist yet
func (s *AuthService) EnsureSeedAdmin(ctx context.Context) error {
	count, err := s.adminUserRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || s.cfg.Admin.Password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.AdminUser{
		Name:     "Administrator",
		Email:    s.cfg.Admin.Email,
		Password: string(hash),
	}
	if err := s.adminUserRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("seed admin created", zap.String("email", admin.Email))
	return nil
}

func (s *AuthService) sendOTP(ctx context.Context, phone string) error {
	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	challenge := &models.OTPChallenge{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(time.Second * time.Duration(s.cfg.SMS.OTPExpiry)),
	}
	if err := s.otpRepo.Upsert(ctx, challenge); err != nil {
		return err
	}

	message := fmt.Sprintf("Your RewardHub verification code is %s", otp)
	if _, err := s.sms.SendSMS(phone, message); err != nil {
		s.logger.Error("otp delivery failed", zap.String("phone", phone), zap.Error(err))
		return apperrors.Transient("could not deliver the verification code, try again")
	}
	return nil
}

func (s *AuthService) verifyOTP(ctx context.Context, phone, otp string) error {
	challenge, err := s.otpRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if time.Now().After(challenge.ExpiresAt) {
		return apperrors.ErrOTPExpired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(otp)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	// A challenge is single use
	return s.otpRepo.DeleteByPhone(ctx, phone)
}
