package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStateStorage мок для StateStorage
type MockStateStorage struct {
	mock.Mock
}

func (m *MockStateStorage) Load(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStateStorage) Save(ctx context.Context, name string, value []byte) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}
