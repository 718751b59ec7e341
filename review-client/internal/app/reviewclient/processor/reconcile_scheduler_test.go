package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserRefresher мок для UserRefresher
type MockUserRefresher struct {
	mock.Mock
}

func (m *MockUserRefresher) RefreshCurrentUser(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockBookRefresher мок для BookRefresher
type MockBookRefresher struct {
	mock.Mock
}

func (m *MockBookRefresher) RefreshCurrentBook(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewReconcileScheduler(t *testing.T) {
	// Arrange
	users := new(MockUserRefresher)
	books := new(MockBookRefresher)

	// Act
	scheduler := NewReconcileScheduler(users, books)

	// Assert
	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Empty(t, scheduler.GetEntries())
}

func TestReconcileScheduler_Start_Success(t *testing.T) {
	// Arrange
	users := new(MockUserRefresher)
	books := new(MockBookRefresher)
	scheduler := NewReconcileScheduler(users, books)
	users.On("RefreshCurrentUser", mock.Anything).Return(nil)
	books.On("RefreshCurrentBook", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(context.Background(), "*/5 * * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	// Cleanup
	scheduler.Stop()
	users.AssertExpectations(t)
	books.AssertExpectations(t)
}

func TestReconcileScheduler_Start_InvalidSchedule(t *testing.T) {
	scheduler := NewReconcileScheduler(new(MockUserRefresher), new(MockBookRefresher))

	err := scheduler.Start(context.Background(), "invalid cron expression")

	assert.Error(t, err)
}

func TestReconcileScheduler_Reconcile_UserFailureDoesNotSkipBooks(t *testing.T) {
	// Arrange
	users := new(MockUserRefresher)
	books := new(MockBookRefresher)
	scheduler := NewReconcileScheduler(users, books)
	users.On("RefreshCurrentUser", mock.Anything).Return(errors.New("user api unavailable"))
	books.On("RefreshCurrentBook", mock.Anything).Return(nil)

	// Act
	scheduler.Reconcile(context.Background())

	// Assert
	users.AssertNumberOfCalls(t, "RefreshCurrentUser", 1)
	books.AssertNumberOfCalls(t, "RefreshCurrentBook", 1)
}

func TestReconcileScheduler_JobExecution(t *testing.T) {
	// Arrange
	users := new(MockUserRefresher)
	books := new(MockBookRefresher)
	scheduler := NewReconcileScheduler(users, books)
	users.On("RefreshCurrentUser", mock.Anything).Return(nil)
	books.On("RefreshCurrentBook", mock.Anything).Return(nil)

	// Act - @every для быстрого теста
	err := scheduler.Start(context.Background(), "@every 1s")
	assert.NoError(t, err)
	time.Sleep(1500 * time.Millisecond)
	scheduler.Stop()

	// Assert - начальный проход + минимум один по расписанию
	assert.GreaterOrEqual(t, len(users.Calls), 2)
}
