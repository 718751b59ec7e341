package service

import (
	"context"
	"errors"
	"fmt"

	"bookreviews/pkg/logger"
	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"

	"github.com/rs/zerolog"
)

// BookService текущая книга: поиск/создание по Open Library ID и привязка отзывов
type BookService struct {
	books   infrastructure.BookServiceClient
	reviews infrastructure.ReviewServiceClient
	tags    infrastructure.TagServiceClient
	store   StateStore
	log     zerolog.Logger
}

func NewBookService(
	books infrastructure.BookServiceClient,
	reviews infrastructure.ReviewServiceClient,
	tags infrastructure.TagServiceClient,
	store StateStore,
) *BookService {
	return &BookService{
		books:   books,
		reviews: reviews,
		tags:    tags,
		store:   store,
		log:     logger.WithComponent("book_service"),
	}
}

// OpenBook находит книгу, создает ее при отсутствии и делает текущей
func (s *BookService) OpenBook(ctx context.Context, olid string) (*entity.Book, error) {
	book, err := s.books.FindBookByOLID(ctx, olid)
	if err != nil {
		if !errors.Is(err, infrastructure.ErrNotFound) {
			return nil, fmt.Errorf("failed to find book %s: %w", olid, wrapRemote(err))
		}

		s.log.Info().Str("olid", olid).Msg("book not found, creating")
		book, err = s.books.CreateBookByOLID(ctx, olid)
		if err != nil {
			return nil, fmt.Errorf("failed to create book %s: %w", olid, wrapRemote(err))
		}
	}

	if err := s.store.SetCurrentBook(ctx, *book); err != nil {
		return nil, err
	}

	// Список открытых книг: запись заменяется целиком
	books := s.store.CurrentBooks().Books
	replaced := false
	for i := range books {
		if books[i].OLID == book.OLID {
			books[i] = *book
			replaced = true
		}
	}
	if !replaced {
		books = append(books, *book)
	}
	if err := s.store.SetCurrentBooks(ctx, books); err != nil {
		return nil, err
	}

	return book, nil
}

// AddReview привязывает отзыв к книге
func (s *BookService) AddReview(ctx context.Context, olid, reviewID string) (*entity.Book, error) {
	book, err := s.books.AddReviewToBook(ctx, olid, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to add review %s to book %s: %w", reviewID, olid, wrapRemote(err))
	}

	return book, s.replaceCurrentBook(ctx, book)
}

// WriteReview создает теги, затем отзыв автора и привязывает его к книге.
// Повторяющиеся подписи дают один тег, порядок тегов сохраняется.
func (s *BookService) WriteReview(ctx context.Context, olid, authorID string, req *entity.WriteReviewRequest) (*entity.WriteReviewResult, error) {
	if authorID == "" {
		return nil, fmt.Errorf("writing a review requires a signed in user: %w", ErrUnauthenticated)
	}

	tagIDs := make([]string, 0, len(req.Tags))
	created := make(map[string]string, len(req.Tags))
	for _, label := range req.Tags {
		id, ok := created[label]
		if !ok {
			tag, err := s.tags.CreateTag(ctx, label)
			if err != nil {
				return nil, fmt.Errorf("failed to create tag %q: %w", label, wrapRemote(err))
			}
			id = tag.ID
			created[label] = id
		}
		tagIDs = append(tagIDs, id)
	}

	review, err := s.reviews.CreateReview(ctx, &entity.CreateReviewRequest{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: authorID,
		BookOLID: olid,
		Tags:     tagIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", wrapRemote(err))
	}

	book, err := s.AddReview(ctx, olid, review.ID)
	if err != nil {
		// Отзыв уже создан, но не привязан к книге
		s.log.Error().Err(err).
			Str("review_id", review.ID).
			Str("olid", olid).
			Msg("review created but not attached to book")
		return nil, err
	}

	s.log.Info().Str("review_id", review.ID).Str("olid", olid).Msg("review written")
	return &entity.WriteReviewResult{Review: review, Book: book}, nil
}

// RemoveReview отвязывает отзыв от книги
func (s *BookService) RemoveReview(ctx context.Context, olid, reviewID string) (*entity.Book, error) {
	book, err := s.books.RemoveReviewFromBook(ctx, olid, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove review %s from book %s: %w", reviewID, olid, wrapRemote(err))
	}

	return book, s.replaceCurrentBook(ctx, book)
}

// replaceCurrentBook заменяет текущую книгу и помечает список книг устаревшим
func (s *BookService) replaceCurrentBook(ctx context.Context, book *entity.Book) error {
	if s.store.CurrentBooks().Book.OLID == book.OLID {
		if err := s.store.SetCurrentBook(ctx, *book); err != nil {
			return err
		}
	}
	return s.store.SetBooksNeedRefresh(ctx, true)
}

// RefreshCurrentBook перезагружает текущую книгу, если срез книг помечен
func (s *BookService) RefreshCurrentBook(ctx context.Context) error {
	state := s.store.CurrentBooks()
	if !state.NeedsRefresh {
		return nil
	}

	if state.Book.OLID != "" {
		book, err := s.books.FindBookByOLID(ctx, state.Book.OLID)
		switch {
		case errors.Is(err, infrastructure.ErrNotFound):
			if err := s.store.RemoveCurrentBook(ctx); err != nil {
				return err
			}
		case err != nil:
			return fmt.Errorf("failed to refresh book %s: %w", state.Book.OLID, wrapRemote(err))
		default:
			if err := s.store.SetCurrentBook(ctx, *book); err != nil {
				return err
			}
		}
	}

	return s.store.SetBooksNeedRefresh(ctx, false)
}
