package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/craftfolio/engine/internal/models"
)

// runMigrations brings the schema up to the full desired shape. Existing
// deployments that skip this keep working: the API degrades to whatever
// columns are live.
func runMigrations(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&models.Account{},
		&models.Resume{},
		&models.PortfolioView{},
	)
}

// resumeListColumns are the JSON columns that must read back as arrays.
var resumeListColumns = []string{
	"skills", "experience", "education", "internship", "job_experience", "projects",
}

// backfillListColumns rewrites NULL list columns as empty JSON arrays so
// clients never see null where a list belongs. Rows written before the
// normalization went in are the reason this exists.
func backfillListColumns(ctx context.Context, db *gorm.DB) error {
	for _, col := range resumeListColumns {
		stmt := fmt.Sprintf("UPDATE resumes SET %s = '[]' WHERE %s IS NULL", col, col)
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("backfill %s: %w", col, err)
		}
	}
	return nil
}
