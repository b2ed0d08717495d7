package services

import (
	"context"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"github.com/rewardhub/rewardhub-backend/internal/utils"
	"go.uber.org/zap"
)

// AgentCodeService manages one-time invitation codes for admins. The
// signup-side validation and consumption live in AuthService and
// AccountService; this covers the privileged surface only.
type AgentCodeService struct {
	agentCodeRepo repositories.AgentCodeRepository
	logger        *zap.Logger
}

// NewAgentCodeService creates a new AgentCodeService
func NewAgentCodeService(agentCodeRepo repositories.AgentCodeRepository, logger *zap.Logger) *AgentCodeService {
	return &AgentCodeService{
		agentCodeRepo: agentCodeRepo,
		logger:        logger,
	}
}

// Generate creates count fresh invitation codes
func (s *AgentCodeService) Generate(ctx context.Context, count int) ([]*models.AgentCode, error) {
	codes := make([]*models.AgentCode, 0, count)
	for i := 0; i < count; i++ {
		codes = append(codes, &models.AgentCode{
			Code: utils.GenerateAgentCode(),
			Used: false,
		})
	}
	if err := s.agentCodeRepo.CreateMany(ctx, codes); err != nil {
		return nil, err
	}

	s.logger.Info("agent codes generated", zap.Int("count", count))
	return codes, nil
}

// List retrieves codes, newest first
func (s *AgentCodeService) List(ctx context.Context, page, limit int) ([]*models.AgentCode, error) {
	return s.agentCodeRepo.FindAll(ctx, page, limit)
}
