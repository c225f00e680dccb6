package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"petstore/internal/app/store/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockClientService мок для ClientServiceInterface
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, req *entity.CreateClientRequest) (*entity.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientService) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, purchaseDate, itemBought string) ([]entity.ClientSummary, error) {
	args := m.Called(ctx, purchaseDate, itemBought)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ClientSummary), args.Error(1)
}

func (m *MockClientService) GetClientOrders(ctx context.Context, clientID string) ([]entity.ClientOrder, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ClientOrder), args.Error(1)
}

func (m *MockClientService) RefreshPurchaseCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===================== NewCronScheduler Tests =====================

func TestNewCronScheduler(t *testing.T) {
	mockSvc := new(MockClientService)

	scheduler := NewCronScheduler(mockSvc)

	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, mockSvc, scheduler.clientSvc)
}

// ===================== Start Tests =====================

func TestCronScheduler_Start_Success(t *testing.T) {
	// Arrange
	mockSvc := new(MockClientService)
	scheduler := NewCronScheduler(mockSvc)

	ctx := context.Background()

	// Initial refresh при старте
	mockSvc.On("RefreshPurchaseCache", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(ctx, "*/10 * * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
	mockSvc.AssertExpectations(t)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	mockSvc := new(MockClientService)
	scheduler := NewCronScheduler(mockSvc)

	err := scheduler.Start(context.Background(), "not a cron expression")

	assert.Error(t, err)
}

func TestCronScheduler_Start_InitialRefreshError_ContinuesWork(t *testing.T) {
	// Сбой первого пересчета не мешает запуску планировщика
	mockSvc := new(MockClientService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("RefreshPurchaseCache", mock.Anything).Return(errors.New("db unavailable"))

	err := scheduler.Start(context.Background(), "*/10 * * * *")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
}

// ===================== Job Execution Tests =====================

func TestCronScheduler_JobExecution(t *testing.T) {
	// Arrange
	mockSvc := new(MockClientService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("RefreshPurchaseCache", mock.Anything).Return(nil)

	// @every для быстрого теста
	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	// robfig/cron округляет интервалы @every меньше секунды до 1s,
	// поэтому ждем дольше секунды, чтобы гарантированно поймать срабатывание
	time.Sleep(1500 * time.Millisecond)

	scheduler.Stop()

	// Минимум 2 вызова: initial + cron triggers
	assert.GreaterOrEqual(t, len(mockSvc.Calls), 2)
}

func TestCronScheduler_JobExecution_WithError(t *testing.T) {
	// Планировщик продолжает работать несмотря на ошибки пересчета
	mockSvc := new(MockClientService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("RefreshPurchaseCache", mock.Anything).Return(errors.New("db error"))

	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	// см. комментарий в TestCronScheduler_JobExecution про округление @every до 1s
	time.Sleep(1500 * time.Millisecond)

	scheduler.Stop()

	assert.GreaterOrEqual(t, len(mockSvc.Calls), 2)
}

// ===================== GetEntries Tests =====================

func TestCronScheduler_GetEntries_Empty(t *testing.T) {
	mockSvc := new(MockClientService)
	scheduler := NewCronScheduler(mockSvc)

	assert.Empty(t, scheduler.GetEntries())
}
