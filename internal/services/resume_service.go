package services

import (
	"context"
	"fmt"
	"time"

	"github.com/craftfolio/engine/internal/models"
	"github.com/craftfolio/engine/internal/repository"
	appErr "github.com/craftfolio/engine/pkg/errors"
	"github.com/craftfolio/engine/pkg/logger"
	"go.uber.org/zap"
)

// ResumeService is the owner-facing resume store: every operation here acts
// on behalf of an authenticated account, and single-record operations carry
// the (id, accountID) ownership check down to the repository.
type ResumeService interface {
	Save(ctx context.Context, accountID uint, draft *models.ResumeDraft) (uint, error)
	List(ctx context.Context, accountID uint) ([]*models.ResumeRecord, error)
	Get(ctx context.Context, id, accountID uint) (*models.ResumeRecord, error)
	Update(ctx context.Context, id, accountID uint, draft *models.ResumeDraft) error
	Delete(ctx context.Context, id, accountID uint) error
	Stats(ctx context.Context, accountID uint) (*models.DashboardStats, error)
}

type resumeService struct {
	resumes repository.ResumeRepository
	views   repository.ViewRepository
}

func NewResumeService(resumes repository.ResumeRepository, views repository.ViewRepository) ResumeService {
	return &resumeService{resumes: resumes, views: views}
}

func (s *resumeService) Save(ctx context.Context, accountID uint, draft *models.ResumeDraft) (uint, error) {
	return s.resumes.Create(ctx, accountID, draft)
}

func (s *resumeService) List(ctx context.Context, accountID uint) ([]*models.ResumeRecord, error) {
	return s.resumes.ListByAccount(ctx, accountID)
}

func (s *resumeService) Get(ctx context.Context, id, accountID uint) (*models.ResumeRecord, error) {
	return s.resumes.GetByID(ctx, id, accountID)
}

func (s *resumeService) Update(ctx context.Context, id, accountID uint, draft *models.ResumeDraft) error {
	return s.resumes.Update(ctx, id, accountID, draft)
}

func (s *resumeService) Delete(ctx context.Context, id, accountID uint) error {
	return s.resumes.Delete(ctx, id, accountID)
}

// Stats assembles the dashboard numbers. Only the base resume count can
// fail the call; everything that depends on optional columns or the view
// counter table degrades to zero values.
func (s *resumeService) Stats(ctx context.Context, accountID uint) (*models.DashboardStats, error) {
	total, err := s.resumes.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	stats := &models.DashboardStats{TotalResumes: total}

	latest, err := s.resumes.LatestByAccount(ctx, accountID)
	switch {
	case err == nil:
		stats.LastUpdated = latestTimestamp(latest)
		title := resumeTitle(latest)
		stats.LastResumeTitle = &title
	case !appErr.IsCode(err, appErr.CodeNotFound):
		logger.L().Warn("latest resume lookup failed", zap.Uint("account_id", accountID), zap.Error(err))
	}

	if n, err := s.resumes.CountNewThisMonth(ctx, accountID); err == nil {
		stats.NewThisMonth = n
	} else {
		logger.L().Warn("new-this-month count failed", zap.Uint("account_id", accountID), zap.Error(err))
	}

	if vs, err := s.views.Stats(ctx, accountID); err == nil {
		stats.PortfolioViews = vs.Views
		stats.ViewsThisWeek = vs.ViewsThisWeek
	} else {
		logger.L().Warn("view stats unavailable", zap.Uint("account_id", accountID), zap.Error(err))
	}

	return stats, nil
}

func latestTimestamp(rec *models.ResumeRecord) *time.Time {
	if rec.UpdatedAt != nil {
		return rec.UpdatedAt
	}
	return rec.CreatedAt
}

// resumeTitle derives a display title from the newest resume: the first
// experience entry's role when one exists, otherwise the record id.
func resumeTitle(rec *models.ResumeRecord) string {
	if rec.Experience.Valid && len(rec.Experience.Value) > 0 && rec.Experience.Value[0].Role != "" {
		return rec.Experience.Value[0].Role + " Resume"
	}
	return fmt.Sprintf("Resume %d", rec.ID)
}
