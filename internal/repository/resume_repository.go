package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/craftfolio/engine/internal/models"
	appErr "github.com/craftfolio/engine/pkg/errors"
	"gorm.io/gorm"
)

// ResumeRepository persists resumes against a table whose column set may
// lag the application. Writes include only columns the schema probe
// confirms; reads select * and map whatever comes back, keeping unparseable
// JSON as raw text.
type ResumeRepository interface {
	Create(ctx context.Context, accountID uint, draft *models.ResumeDraft) (uint, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*models.ResumeRecord, error)
	GetByID(ctx context.Context, id, accountID uint) (*models.ResumeRecord, error)
	Update(ctx context.Context, id, accountID uint, draft *models.ResumeDraft) error
	Delete(ctx context.Context, id, accountID uint) error
	LatestByAccount(ctx context.Context, accountID uint) (*models.ResumeRecord, error)
	CountByAccount(ctx context.Context, accountID uint) (int64, error)
	CountNewThisMonth(ctx context.Context, accountID uint) (int64, error)
}

type resumeRepository struct {
	db    *gorm.DB
	probe SchemaInspector
}

// NewResumeRepository builds the schema-tolerant resume store.
func NewResumeRepository(db *gorm.DB, probe SchemaInspector) ResumeRepository {
	return &resumeRepository{db: db, probe: probe}
}

func (r *resumeRepository) conn() (*sql.DB, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "acquire connection pool failed")
	}
	return sqlDB, nil
}

func (r *resumeRepository) Create(ctx context.Context, accountID uint, draft *models.ResumeDraft) (uint, error) {
	available := r.probe.Columns(ctx, "resumes")

	names := []string{}
	args := []any{}
	if available.Has("user_id") {
		names = append(names, "user_id")
		args = append(args, accountID)
	}

	optional := insertColumns(available)
	for _, col := range optional {
		if col == "title" {
			names = append(names, "title")
			args = append(args, draft.Title)
			continue
		}
		v, ok := draft.ColumnJSON(col)
		if !ok {
			continue
		}
		names = append(names, col)
		args = append(args, v)
	}

	if len(optional) == 0 {
		return 0, appErr.New(appErr.CodeSchemaInvalid,
			"resumes table structure is invalid: no writable columns beyond user_id")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	query := "INSERT INTO resumes (" + strings.Join(names, ", ") + ") VALUES (" + placeholders + ")"

	sqlDB, err := r.conn()
	if err != nil {
		return 0, err
	}
	res, err := sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "insert resume failed")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "read resume insert id failed")
	}
	return uint(id), nil
}

func (r *resumeRepository) ListByAccount(ctx context.Context, accountID uint) ([]*models.ResumeRecord, error) {
	sqlDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := sqlDB.QueryContext(ctx, "SELECT * FROM resumes WHERE user_id = ?", accountID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list resumes failed")
	}
	defer rows.Close()

	out := []*models.ResumeRecord{}
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list resumes failed")
	}
	return out, nil
}

func (r *resumeRepository) GetByID(ctx context.Context, id, accountID uint) (*models.ResumeRecord, error) {
	sqlDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := sqlDB.QueryContext(ctx,
		"SELECT * FROM resumes WHERE id = ? AND user_id = ?", id, accountID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get resume failed")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "get resume failed")
		}
		return nil, appErr.New(appErr.CodeNotFound, "resume not found")
	}
	return scanResume(rows)
}

func (r *resumeRepository) LatestByAccount(ctx context.Context, accountID uint) (*models.ResumeRecord, error) {
	available := r.probe.Columns(ctx, "resumes")
	sqlDB, err := r.conn()
	if err != nil {
		return nil, err
	}
	rows, err := sqlDB.QueryContext(ctx,
		"SELECT * FROM resumes WHERE user_id = ? ORDER BY "+latestOrder(available)+" LIMIT 1", accountID)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get latest resume failed")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "get latest resume failed")
		}
		return nil, appErr.New(appErr.CodeNotFound, "no portfolio found")
	}
	return scanResume(rows)
}

func (r *resumeRepository) Update(ctx context.Context, id, accountID uint, draft *models.ResumeDraft) error {
	if err := r.ensureOwned(ctx, id, accountID); err != nil {
		return err
	}

	available := r.probe.Columns(ctx, "resumes")
	cols, ok := updateColumns(available)
	if !ok {
		return appErr.New(appErr.CodeSchemaInvalid,
			"resumes table structure is invalid: minimum writable columns missing")
	}

	assignments := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for _, col := range cols {
		assignments = append(assignments, col+" = ?")
		if col == "title" {
			args = append(args, draft.Title)
			continue
		}
		v, _ := draft.ColumnJSON(col)
		args = append(args, v)
	}
	if available.Has("updated_at") {
		assignments = append(assignments, "updated_at = NOW()")
	}
	args = append(args, id, accountID)

	query := "UPDATE resumes SET " + strings.Join(assignments, ", ") + " WHERE id = ? AND user_id = ?"

	sqlDB, err := r.conn()
	if err != nil {
		return err
	}
	if _, err := sqlDB.ExecContext(ctx, query, args...); err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update resume failed")
	}
	return nil
}

func (r *resumeRepository) Delete(ctx context.Context, id, accountID uint) error {
	if err := r.ensureOwned(ctx, id, accountID); err != nil {
		return err
	}
	sqlDB, err := r.conn()
	if err != nil {
		return err
	}
	res, err := sqlDB.ExecContext(ctx,
		"DELETE FROM resumes WHERE id = ? AND user_id = ?", id, accountID)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "delete resume failed")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErr.New(appErr.CodeNotFound, "resume not found")
	}
	return nil
}

func (r *resumeRepository) CountByAccount(ctx context.Context, accountID uint) (int64, error) {
	sqlDB, err := r.conn()
	if err != nil {
		return 0, err
	}
	var n int64
	err = sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM resumes WHERE user_id = ?", accountID).Scan(&n)
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count resumes failed")
	}
	return n, nil
}

func (r *resumeRepository) CountNewThisMonth(ctx context.Context, accountID uint) (int64, error) {
	if !r.probe.Columns(ctx, "resumes").Has("created_at") {
		return 0, nil
	}
	sqlDB, err := r.conn()
	if err != nil {
		return 0, err
	}
	var n int64
	err = sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM resumes WHERE user_id = ? AND created_at >= DATE_SUB(NOW(), INTERVAL 1 MONTH)",
		accountID).Scan(&n)
	if err != nil {
		return 0, appErr.Wrap(err, appErr.CodeInternal, "count recent resumes failed")
	}
	return n, nil
}

// ensureOwned is the ownership check shared by every mutating operation: a
// resume that exists under another account reads the same as one that does
// not exist at all.
func (r *resumeRepository) ensureOwned(ctx context.Context, id, accountID uint) error {
	sqlDB, err := r.conn()
	if err != nil {
		return err
	}
	var found uint
	err = sqlDB.QueryRowContext(ctx,
		"SELECT id FROM resumes WHERE id = ? AND user_id = ?", id, accountID).Scan(&found)
	if err == sql.ErrNoRows {
		return appErr.New(appErr.CodeNotFound, "resume not found")
	}
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "resume ownership check failed")
	}
	return nil
}

// scanResume maps the current row into a ResumeRecord by column name, so
// SELECT * works against any historical shape of the table. Every value is
// read as nullable text first; typed decoding happens per column.
func scanResume(rows *sql.Rows) (*models.ResumeRecord, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "read resume columns failed")
	}
	holders := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range holders {
		ptrs[i] = &holders[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "scan resume failed")
	}

	rec := &models.ResumeRecord{}
	for i, col := range cols {
		v := holders[i]
		switch strings.ToLower(col) {
		case "id":
			rec.ID = parseUintColumn(v)
		case "user_id":
			rec.UserID = parseUintColumn(v)
		case "title":
			if v.Valid {
				title := v.String
				rec.Title = &title
			}
		case "summary":
			rec.Summary = models.ObjectColumn[models.SummaryBlock](nullText(v))
		case "skills":
			rec.Skills = models.ListColumn[string](nullText(v))
		case "experience":
			rec.Experience = models.ListColumn[models.ExperienceEntry](nullText(v))
		case "education":
			rec.Education = models.ListColumn[models.EducationEntry](nullText(v))
		case "internship":
			rec.Internship = models.ListColumn[models.ExperienceEntry](nullText(v))
		case "job_experience":
			rec.JobExperience = models.ListColumn[models.ExperienceEntry](nullText(v))
		case "projects":
			rec.Projects = models.ListColumn[models.ProjectEntry](nullText(v))
		case "created_at":
			rec.CreatedAt = parseTimeColumn(v)
		case "updated_at":
			rec.UpdatedAt = parseTimeColumn(v)
		}
	}
	return rec, nil
}

func nullText(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func parseUintColumn(v sql.NullString) uint {
	if !v.Valid {
		return 0
	}
	n, err := strconv.ParseUint(v.String, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

func parseTimeColumn(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v.String); err == nil {
			return &t
		}
	}
	return nil
}
