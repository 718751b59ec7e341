package handler

import (
	"context"

	"bookreviews/review-client/internal/app/reviewclient/entity"

	"github.com/stretchr/testify/mock"
)

type MockReviewPageService struct {
	mock.Mock
}

func (m *MockReviewPageService) GetReviewPage(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error) {
	args := m.Called(ctx, reviewID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewView), args.Error(1)
}

func (m *MockReviewPageService) ToggleLike(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error) {
	args := m.Called(ctx, reviewID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewView), args.Error(1)
}

func (m *MockReviewPageService) SetLike(ctx context.Context, reviewID, viewerID string, liked bool) (*entity.ReviewView, error) {
	args := m.Called(ctx, reviewID, viewerID, liked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewView), args.Error(1)
}

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) OpenBook(ctx context.Context, olid string) (*entity.Book, error) {
	args := m.Called(ctx, olid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookService) AddReview(ctx context.Context, olid, reviewID string) (*entity.Book, error) {
	args := m.Called(ctx, olid, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookService) RemoveReview(ctx context.Context, olid, reviewID string) (*entity.Book, error) {
	args := m.Called(ctx, olid, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Book), args.Error(1)
}

func (m *MockBookService) WriteReview(ctx context.Context, olid, authorID string, req *entity.WriteReviewRequest) (*entity.WriteReviewResult, error) {
	args := m.Called(ctx, olid, authorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WriteReviewResult), args.Error(1)
}

func (m *MockBookService) RefreshCurrentBook(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) SignIn(ctx context.Context, userID string) (*entity.CurrentUserState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CurrentUserState), args.Error(1)
}

func (m *MockSessionService) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionService) Current() entity.CurrentUserState {
	args := m.Called()
	return args.Get(0).(entity.CurrentUserState)
}

func (m *MockSessionService) RefreshCurrentUser(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
