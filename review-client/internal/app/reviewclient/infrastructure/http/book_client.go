package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
)

const booksResource = "books"

// BookClient клиент Book API.
// Книга адресуется по Open Library ID (olid), а не по внутреннему ID.
type BookClient struct {
	api *APIClient
}

func NewBookClient(api *APIClient) *BookClient {
	return &BookClient{api: api}
}

func bookPath(olid string) string {
	return "/api/books/olid/" + escape(olid)
}

// FindBookByOLID получает книгу по Open Library ID
func (c *BookClient) FindBookByOLID(ctx context.Context, olid string) (*entity.Book, error) {
	var book entity.Book
	if err := c.api.do(ctx, booksResource, http.MethodGet, bookPath(olid), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBookByOLID создает книгу по Open Library ID.
// Повторный вызов безопасен: если сервер отвечает 409, книга читается через GET.
func (c *BookClient) CreateBookByOLID(ctx context.Context, olid string) (*entity.Book, error) {
	var book entity.Book
	err := c.api.do(ctx, booksResource, http.MethodPost, bookPath(olid), nil, &book)
	if err == nil {
		return &book, nil
	}
	if errors.Is(err, infrastructure.ErrConflict) {
		existing, findErr := c.FindBookByOLID(ctx, olid)
		if findErr != nil {
			return nil, fmt.Errorf("book %s already exists but could not be read: %w", olid, findErr)
		}
		return existing, nil
	}
	return nil, err
}

// AddReviewToBook привязывает отзыв к книге
func (c *BookClient) AddReviewToBook(ctx context.Context, olid string, reviewID string) (*entity.Book, error) {
	var book entity.Book
	body := entity.BookReviewRequest{ReviewID: reviewID}
	if err := c.api.do(ctx, booksResource, http.MethodPost, bookPath(olid)+"/reviews", body, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// RemoveReviewFromBook отвязывает отзыв от книги (hard delete на стороне сервера)
func (c *BookClient) RemoveReviewFromBook(ctx context.Context, olid string, reviewID string) (*entity.Book, error) {
	var book entity.Book
	body := entity.BookReviewRequest{ReviewID: reviewID}
	if err := c.api.do(ctx, booksResource, http.MethodDelete, bookPath(olid)+"/reviews", body, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

var _ infrastructure.BookServiceClient = (*BookClient)(nil)
