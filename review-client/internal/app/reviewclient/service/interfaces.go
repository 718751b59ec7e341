package service

import (
	"context"

	"bookreviews/review-client/internal/app/reviewclient/entity"
)

// StateStore локальное состояние клиента (реализация - state.Store)
type StateStore interface {
	CurrentUser() entity.CurrentUserState
	CurrentBooks() entity.CurrentBooksState
	SetCurrentUser(ctx context.Context, user *entity.User) error
	ClearCurrentUser(ctx context.Context) error
	MarkUserNeedsRefresh(ctx context.Context) error
	SetCurrentBook(ctx context.Context, book entity.Book) error
	RemoveCurrentBook(ctx context.Context) error
	SetCurrentBooks(ctx context.Context, books []entity.Book) error
	SetBooksNeedRefresh(ctx context.Context, needsRefresh bool) error
}

type ReviewPageServiceInterface interface {
	GetReviewPage(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error)
	ToggleLike(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error)
	SetLike(ctx context.Context, reviewID, viewerID string, liked bool) (*entity.ReviewView, error)
}

type BookServiceInterface interface {
	OpenBook(ctx context.Context, olid string) (*entity.Book, error)
	AddReview(ctx context.Context, olid, reviewID string) (*entity.Book, error)
	RemoveReview(ctx context.Context, olid, reviewID string) (*entity.Book, error)
	WriteReview(ctx context.Context, olid, authorID string, req *entity.WriteReviewRequest) (*entity.WriteReviewResult, error)
	RefreshCurrentBook(ctx context.Context) error
}

type SessionServiceInterface interface {
	SignIn(ctx context.Context, userID string) (*entity.CurrentUserState, error)
	SignOut(ctx context.Context) error
	Current() entity.CurrentUserState
	RefreshCurrentUser(ctx context.Context) error
}
