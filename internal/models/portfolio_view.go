package models

import "time"

// PortfolioView aggregates public page views for one account. One row per
// account, created lazily on the first view. views_this_week resets whenever
// the ISO year-week of last_view_date differs from the current one; the
// reset arithmetic lives in a single conditional upsert so concurrent views
// never lose increments.
type PortfolioView struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Views         int64     `gorm:"not null;default:0" json:"views"`
	ViewsThisWeek int64     `gorm:"column:views_this_week;not null;default:0" json:"views_this_week"`
	LastViewDate  time.Time `json:"last_view_date"`
}

// TableName keeps the historical table name.
func (PortfolioView) TableName() string { return "portfolio_views" }

// ViewStats is the read-side summary used by the dashboard. Missing view
// storage degrades to zero values instead of failing the caller.
type ViewStats struct {
	Views         int64 `json:"views"`
	ViewsThisWeek int64 `json:"views_this_week"`
}
