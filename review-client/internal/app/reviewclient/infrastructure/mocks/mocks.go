package mocks

import (
	"context"

	"bookreviews/review-client/internal/app/reviewclient/entity"

	"github.com/stretchr/testify/mock"
)

// MockReviewClient мок для ReviewServiceClient
type MockReviewClient struct {
	mock.Mock
}

func (m *MockReviewClient) FindReviewByID(ctx context.Context, reviewID string) (*entity.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewClient) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewClient) AddReviewLiker(ctx context.Context, reviewID string, userID string) (*entity.Review, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewClient) RemoveReviewLiker(ctx context.Context, reviewID string, userID string) (*entity.Review, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

// MockUserClient мок для UserServiceClient
type MockUserClient struct {
	mock.Mock
}

func (m *MockUserClient) FindUserByID(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserClient) AddUserLikedReview(ctx context.Context, userID string, reviewID string) (*entity.User, error) {
	args := m.Called(ctx, userID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserClient) RemoveUserLikedReview(ctx context.Context, userID string, reviewID string) (*entity.User, error) {
	args := m.Called(ctx, userID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockTagClient мок для TagServiceClient
type MockTagClient struct {
	mock.Mock
}

func (m *MockTagClient) FindTagByID(ctx context.Context, tagID string) (*entity.Tag, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tag), args.Error(1)
}

func (m *MockTagClient) CreateTag(ctx context.Context, label string) (*entity.Tag, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tag), args.Error(1)
}

// MockBookClient мок для BookServiceClient
type MockBookClient struct {
	mock.Mock
}

func (m *MockBookClient) FindBookByOLID(ctx context.Context, olid string) (*entity.Book, error) {
	args := m.Called(ctx, olid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookClient) CreateBookByOLID(ctx context.Context, olid string) (*entity.Book, error) {
	args := m.Called(ctx, olid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookClient) AddReviewToBook(ctx context.Context, olid string, reviewID string) (*entity.Book, error) {
	args := m.Called(ctx, olid, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookClient) RemoveReviewFromBook(ctx context.Context, olid string, reviewID string) (*entity.Book, error) {
	args := m.Called(ctx, olid, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher (Kafka)
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
