package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/craftfolio/engine/internal/models"
	appErr "github.com/craftfolio/engine/pkg/errors"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error numbers.
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	mysqlErrDuplicateEntry = 1062
)

// AccountRepository persists accounts. Like the resumes table, users can be
// partially migrated (missing last_login or profile_picture columns), so
// the optional-column paths consult the schema probe.
type AccountRepository interface {
	BaseRepository[models.Account]
	CreateAccount(ctx context.Context, acc *models.Account) error
	GetByEmail(ctx context.Context, email string, dest *models.Account) error
	PublicProfile(ctx context.Context, accountID uint) (*models.PublicProfile, error)
	UpdateProfilePicture(ctx context.Context, accountID uint, url, publicID *string) error
	TouchLastLogin(ctx context.Context, accountID uint) error
}

type accountRepository struct {
	BaseRepository[models.Account]
	db    *gorm.DB
	probe SchemaInspector
}

func NewAccountRepository(db *gorm.DB, probe SchemaInspector) AccountRepository {
	return &accountRepository{
		BaseRepository: NewBaseRepository[models.Account](db),
		db:             db,
		probe:          probe,
	}
}

// CreateAccount inserts only the columns every deployment has, so
// registration keeps working against a users table that predates the
// profile-picture and last-login migrations.
func (r *accountRepository) CreateAccount(ctx context.Context, acc *models.Account) error {
	err := r.db.WithContext(ctx).
		Select("Name", "Email", "Password", "CreatedAt").
		Create(acc).Error
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
			return appErr.New(appErr.CodeAlreadyExists, "email already registered")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "create account failed")
	}
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string, dest *models.Account) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return appErr.New(appErr.CodeNotFound, "account not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get account by email failed")
	}
	return nil
}

// PublicProfile returns the fields shown on public portfolio pages. When
// the avatar columns are missing it falls back to name only.
func (r *accountRepository) PublicProfile(ctx context.Context, accountID uint) (*models.PublicProfile, error) {
	available := r.probe.Columns(ctx, "users")

	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "acquire connection pool failed")
	}

	p := &models.PublicProfile{}
	if available.Has("profile_picture") && available.Has("profile_picture_public_id") {
		err = sqlDB.QueryRowContext(ctx,
			"SELECT name, profile_picture, profile_picture_public_id FROM users WHERE id = ?",
			accountID).Scan(&p.Name, &p.ProfilePicture, &p.ProfilePicturePublicID)
	} else {
		err = sqlDB.QueryRowContext(ctx,
			"SELECT name FROM users WHERE id = ?", accountID).Scan(&p.Name)
	}
	if err == sql.ErrNoRows {
		return nil, appErr.New(appErr.CodeNotFound, "account not found")
	}
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get public profile failed")
	}
	return p, nil
}

// UpdateProfilePicture sets or clears the avatar reference. Nil values
// store NULL, which is how removal is represented. The caller's id comes
// from an authenticated token, so the update is not re-verified; affected
// rows are not checked because MySQL reports changed rows, not matched
// rows, and a no-op write (clearing an already-clear avatar) is success.
func (r *accountRepository) UpdateProfilePicture(ctx context.Context, accountID uint, url, publicID *string) error {
	err := r.db.WithContext(ctx).Exec(
		"UPDATE users SET profile_picture = ?, profile_picture_public_id = ? WHERE id = ?",
		url, publicID, accountID).Error
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "update profile picture failed")
	}
	return nil
}

// TouchLastLogin records the login timestamp when the column exists; older
// deployments without it are silently skipped.
func (r *accountRepository) TouchLastLogin(ctx context.Context, accountID uint) error {
	if !r.probe.Columns(ctx, "users").Has("last_login") {
		return nil
	}
	err := r.db.WithContext(ctx).Exec(
		"UPDATE users SET last_login = NOW() WHERE id = ?", accountID).Error
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "touch last login failed")
	}
	return nil
}
