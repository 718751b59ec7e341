package infrastructure

import (
	"context"
	"errors"

	"bookreviews/review-client/internal/app/reviewclient/entity"
)

// Ошибки транспорта, общие для всех клиентов ресурсов.
// Реализации оборачивают их, сохраняя HTTP статус.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrConflict        = errors.New("resource already exists")
	ErrTransport       = errors.New("transport failure")
)

// BookServiceClient клиент Book API (книги по Open Library ID)
type BookServiceClient interface {
	FindBookByOLID(ctx context.Context, olid string) (*entity.Book, error)
	CreateBookByOLID(ctx context.Context, olid string) (*entity.Book, error)
	AddReviewToBook(ctx context.Context, olid string, reviewID string) (*entity.Book, error)
	RemoveReviewFromBook(ctx context.Context, olid string, reviewID string) (*entity.Book, error)
}

// ReviewServiceClient клиент Review API
type ReviewServiceClient interface {
	FindReviewByID(ctx context.Context, reviewID string) (*entity.Review, error)
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
	AddReviewLiker(ctx context.Context, reviewID string, userID string) (*entity.Review, error)
	RemoveReviewLiker(ctx context.Context, reviewID string, userID string) (*entity.Review, error)
}

// UserServiceClient клиент User API
type UserServiceClient interface {
	FindUserByID(ctx context.Context, userID string) (*entity.User, error)
	AddUserLikedReview(ctx context.Context, userID string, reviewID string) (*entity.User, error)
	RemoveUserLikedReview(ctx context.Context, userID string, reviewID string) (*entity.User, error)
}

// TagServiceClient клиент Tag API
type TagServiceClient interface {
	FindTagByID(ctx context.Context, tagID string) (*entity.Tag, error)
	CreateTag(ctx context.Context, label string) (*entity.Tag, error)
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
