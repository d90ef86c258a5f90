package handlers

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/craftfolio/engine/internal/models"
	"github.com/craftfolio/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests (error responses log server faults)
	_, err := logger.Init("info", "json")
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockPortfolioService struct {
	mock.Mock
}

func (m *mockPortfolioService) GetPublicPortfolio(ctx context.Context, accountID uint) (*models.PortfolioPayload, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.(*models.PortfolioPayload), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockResumeService struct {
	mock.Mock
}

func (m *mockResumeService) Save(ctx context.Context, accountID uint, draft *models.ResumeDraft) (uint, error) {
	args := m.Called(ctx, accountID, draft)
	return args.Get(0).(uint), args.Error(1)
}

func (m *mockResumeService) List(ctx context.Context, accountID uint) ([]*models.ResumeRecord, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.([]*models.ResumeRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResumeService) Get(ctx context.Context, id, accountID uint) (*models.ResumeRecord, error) {
	args := m.Called(ctx, id, accountID)
	if v := args.Get(0); v != nil {
		return v.(*models.ResumeRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResumeService) Update(ctx context.Context, id, accountID uint, draft *models.ResumeDraft) error {
	args := m.Called(ctx, id, accountID, draft)
	return args.Error(0)
}

func (m *mockResumeService) Delete(ctx context.Context, id, accountID uint) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

func (m *mockResumeService) Stats(ctx context.Context, accountID uint) (*models.DashboardStats, error) {
	args := m.Called(ctx, accountID)
	if v := args.Get(0); v != nil {
		return v.(*models.DashboardStats), args.Error(1)
	}
	return nil, args.Error(1)
}
