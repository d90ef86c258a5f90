package repository

import (
	"context"

	"github.com/craftfolio/engine/internal/models"
	appErr "github.com/craftfolio/engine/pkg/errors"
	"gorm.io/gorm"
)

// recordViewSQL is a single conditional upsert: concurrent public views of
// the same account must not lose increments, so the week-boundary reset
// arithmetic runs inside the statement rather than read-modify-write in the
// application. YEARWEEK mode 1 matches ISO-8601 week numbering.
const recordViewSQL = `
INSERT INTO portfolio_views (user_id, views, views_this_week, last_view_date)
VALUES (?, 1, 1, NOW())
ON DUPLICATE KEY UPDATE
  views = views + 1,
  views_this_week = CASE
    WHEN YEARWEEK(last_view_date, 1) = YEARWEEK(NOW(), 1) THEN views_this_week + 1
    ELSE 1
  END,
  last_view_date = NOW()`

// ViewRepository tracks public portfolio page views, one counter row per
// account, created lazily on first view.
type ViewRepository interface {
	Record(ctx context.Context, accountID uint) error
	Stats(ctx context.Context, accountID uint) (*models.ViewStats, error)
}

type viewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

// Record upserts the counter for accountID. Callers attach this to public
// reads best-effort; an error here must not fail the containing read.
func (r *viewRepository) Record(ctx context.Context, accountID uint) error {
	if err := r.db.WithContext(ctx).Exec(recordViewSQL, accountID).Error; err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "record portfolio view failed")
	}
	return nil
}

// Stats reads the counters for accountID. A missing row reads as zeros;
// other failures (table not provisioned) are the caller's to degrade.
func (r *viewRepository) Stats(ctx context.Context, accountID uint) (*models.ViewStats, error) {
	var row models.PortfolioView
	err := r.db.WithContext(ctx).Where("user_id = ?", accountID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return &models.ViewStats{}, nil
	}
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "read portfolio views failed")
	}
	return &models.ViewStats{Views: row.Views, ViewsThisWeek: row.ViewsThisWeek}, nil
}
