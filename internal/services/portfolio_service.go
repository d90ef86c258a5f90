package services

import (
	"context"

	"github.com/craftfolio/engine/internal/models"
	"github.com/craftfolio/engine/internal/repository"
	"github.com/craftfolio/engine/pkg/logger"
	"go.uber.org/zap"
)

// PortfolioService assembles public portfolio pages: the account's most
// recent resume merged with its public profile, with a best-effort view
// increment as a side effect of every successful read.
type PortfolioService interface {
	GetPublicPortfolio(ctx context.Context, accountID uint) (*models.PortfolioPayload, error)
}

type portfolioService struct {
	resumes  repository.ResumeRepository
	accounts repository.AccountRepository
	views    repository.ViewRepository
}

func NewPortfolioService(resumes repository.ResumeRepository, accounts repository.AccountRepository, views repository.ViewRepository) PortfolioService {
	return &portfolioService{resumes: resumes, accounts: accounts, views: views}
}

func (s *portfolioService) GetPublicPortfolio(ctx context.Context, accountID uint) (*models.PortfolioPayload, error) {
	// No resume means no portfolio and, importantly, no counter row: the
	// view is only recorded once there is something to show.
	rec, err := s.resumes.LatestByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	payload := &models.PortfolioPayload{ResumeRecord: *rec}

	if prof, err := s.accounts.PublicProfile(ctx, accountID); err == nil {
		payload.AccountName = prof.Name
		payload.ProfilePicture = prof.ProfilePicture
		payload.ProfilePicturePublicID = prof.ProfilePicturePublicID
	} else {
		logger.L().Warn("public profile lookup failed",
			zap.Uint("account_id", accountID), zap.Error(err))
	}

	// View tracking never fails the read; an unprovisioned counter table
	// just means the page serves with zero-valued stats.
	if err := s.views.Record(ctx, accountID); err != nil {
		logger.L().Warn("view tracking unavailable",
			zap.Uint("account_id", accountID), zap.Error(err))
	}

	return payload, nil
}
