package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftfolio/engine/internal/models"
	"github.com/craftfolio/engine/internal/repository"
	appErr "github.com/craftfolio/engine/pkg/errors"
	"github.com/craftfolio/engine/pkg/logger"
	"go.uber.org/zap"
)

const bcryptCost = 12

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.Account, error)
	Login(ctx context.Context, email, password string) (string, *models.Account, error)
}

type authService struct {
	accounts   repository.AccountRepository
	hmacSecret []byte
}

func NewAuthService(accounts repository.AccountRepository, secret []byte) AuthService {
	return &authService{accounts: accounts, hmacSecret: secret}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.Account, error) {
	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		// bcrypt caps input at 72 bytes; longer passwords are a caller
		// error, not a server fault.
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, appErr.Wrap(err, appErr.CodeInvalid, "password must not exceed 72 bytes")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	acc := &models.Account{
		Name:      name,
		Email:     email,
		Password:  string(ph),
		CreatedAt: time.Now(),
	}
	if err := s.accounts.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	var acc models.Account
	if err := s.accounts.GetByEmail(ctx, email, &acc); err != nil {
		// Generic message so email enumeration is not possible.
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(acc.ID), 10),
		"email": acc.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}

	// Best effort: the column may not exist on older deployments.
	if err := s.accounts.TouchLastLogin(ctx, acc.ID); err != nil {
		logger.L().Warn("touch last login failed", zap.Uint("account_id", acc.ID), zap.Error(err))
	}

	return tokenString, &acc, nil
}
