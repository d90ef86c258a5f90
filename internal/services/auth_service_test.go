package services

import (
	"context"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftfolio/engine/internal/models"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

var testSecret = []byte("test-secret")

func TestRegisterHashesPassword(t *testing.T) {
	accounts := &mockAccountRepository{}
	svc := NewAuthService(accounts, testSecret)

	accounts.On("CreateAccount", mock.Anything, mock.MatchedBy(func(acc *models.Account) bool {
		// The stored password must be a bcrypt hash of the input, never the input.
		return acc.Password != "Sup3r$ecret" &&
			bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte("Sup3r$ecret")) == nil
	})).Return(nil).Once()

	acc, err := svc.Register(context.Background(), "Ada", "ada@example.com", "Sup3r$ecret")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", acc.Email)
	mock.AssertExpectationsForObjects(t, accounts)
}

func TestRegisterOverlongPasswordIsCallerError(t *testing.T) {
	accounts := &mockAccountRepository{}
	svc := NewAuthService(accounts, testSecret)

	// Past bcrypt's 72-byte cap but within the request validator's 128.
	long := strings.Repeat("A1$a", 25)
	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", long)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	accounts.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r$ecret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.Account{ID: 5, Name: "Ada", Email: "ada@example.com", Password: string(hash)}

	t.Run("valid credentials issue a parseable token", func(t *testing.T) {
		accounts := &mockAccountRepository{}
		svc := NewAuthService(accounts, testSecret)

		accounts.On("GetByEmail", mock.Anything, "ada@example.com", mock.Anything).
			Return(nil, stored).Once()
		accounts.On("TouchLastLogin", mock.Anything, uint(5)).Return(nil).Once()

		token, acc, err := svc.Login(context.Background(), "ada@example.com", "Sup3r$ecret")
		require.NoError(t, err)
		require.Equal(t, uint(5), acc.ID)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) { return testSecret, nil })
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		require.Equal(t, "5", claims["sub"])
		require.Equal(t, "ada@example.com", claims["email"])

		mock.AssertExpectationsForObjects(t, accounts)
	})

	t.Run("wrong password is a generic unauthorized", func(t *testing.T) {
		accounts := &mockAccountRepository{}
		svc := NewAuthService(accounts, testSecret)

		accounts.On("GetByEmail", mock.Anything, "ada@example.com", mock.Anything).
			Return(nil, stored).Once()

		_, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
		require.Error(t, err)
		require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
		require.Contains(t, err.Error(), "invalid email or password")
		mock.AssertExpectationsForObjects(t, accounts)
	})

	t.Run("unknown email reads identically to wrong password", func(t *testing.T) {
		accounts := &mockAccountRepository{}
		svc := NewAuthService(accounts, testSecret)

		accounts.On("GetByEmail", mock.Anything, "ghost@example.com", mock.Anything).
			Return(appErr.New(appErr.CodeNotFound, "account not found"), nil).Once()

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
		require.Error(t, err)
		require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
		require.Contains(t, err.Error(), "invalid email or password")
		mock.AssertExpectationsForObjects(t, accounts)
	})

	t.Run("last login touch failure does not fail login", func(t *testing.T) {
		accounts := &mockAccountRepository{}
		svc := NewAuthService(accounts, testSecret)

		accounts.On("GetByEmail", mock.Anything, "ada@example.com", mock.Anything).
			Return(nil, stored).Once()
		accounts.On("TouchLastLogin", mock.Anything, uint(5)).
			Return(appErr.New(appErr.CodeInternal, "column race")).Once()

		token, _, err := svc.Login(context.Background(), "ada@example.com", "Sup3r$ecret")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		mock.AssertExpectationsForObjects(t, accounts)
	})
}
