package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"bookreviews/pkg/logger"
	"bookreviews/pkg/metrics"
	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/repository"

	"github.com/rs/zerolog"
)

// Имена записей в долговременном хранилище
const (
	CurrentUserKey  = "currentUser"
	CurrentBooksKey = "currentBooks"
)

// Store локальное состояние клиента: текущий пользователь и текущие книги.
// Каждый переход сначала сохраняется в хранилище и только потом применяется в памяти.
type Store struct {
	mu      sync.RWMutex
	storage repository.StateStorage
	user    entity.CurrentUserState
	books   entity.CurrentBooksState
	log     zerolog.Logger
}

// NewStore создает хранилище со значениями срезов по умолчанию
func NewStore(storage repository.StateStorage) *Store {
	return &Store{
		storage: storage,
		books:   entity.DefaultCurrentBooksState(),
		log:     logger.WithComponent("state_store"),
	}
}

// CurrentUser возвращает копию среза текущего пользователя
func (s *Store) CurrentUser() entity.CurrentUserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// CurrentBooks возвращает копию среза книг
func (s *Store) CurrentBooks() entity.CurrentBooksState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.books.Clone()
}

// Rehydrate восстанавливает оба среза из хранилища.
// Отсутствующие, неизвестные и битые данные заменяются значениями по умолчанию.
func (s *Store) Rehydrate(ctx context.Context) error {
	userData, err := s.load(ctx, CurrentUserKey)
	if err != nil {
		return err
	}
	booksData, err := s.load(ctx, CurrentBooksKey)
	if err != nil {
		return err
	}

	user := decodeSlice(s.log, CurrentUserKey, userData, entity.CurrentUserState{})
	books := decodeSlice(s.log, CurrentBooksKey, booksData, entity.DefaultCurrentBooksState())
	books.Normalize()

	s.mu.Lock()
	s.user = user
	s.books = books
	s.mu.Unlock()

	s.log.Info().
		Str("user_id", user.UserID).
		Int("books", len(books.Books)).
		Msg("client state rehydrated")

	return nil
}

// load возвращает nil без ошибки, если запись еще не сохранялась
func (s *Store) load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.storage.Load(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrStateNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, nil
}

func decodeSlice[T any](log zerolog.Logger, key string, data []byte, fallback T) T {
	if data == nil {
		return fallback
	}

	decoded := fallback
	if err := json.Unmarshal(data, &decoded); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed persisted state, using defaults")
		return fallback
	}
	return decoded
}

// SetCurrentUser запоминает пользователя и снимает флаг обновления
func (s *Store) SetCurrentUser(ctx context.Context, user *entity.User) error {
	if user == nil {
		return s.ClearCurrentUser(ctx)
	}
	return s.transition(ctx, "set_current_user", func(u *entity.CurrentUserState, _ *entity.CurrentBooksState) {
		*u = entity.CurrentUserState{
			UserID: user.ID,
			Role:   user.Role,
			User:   user.Clone(),
		}
	})
}

// ClearCurrentUser сбрасывает срез пользователя (выход)
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.transition(ctx, "clear_current_user", func(u *entity.CurrentUserState, _ *entity.CurrentBooksState) {
		*u = entity.CurrentUserState{}
	})
}

// MarkUserNeedsRefresh помечает пользователя устаревшим
func (s *Store) MarkUserNeedsRefresh(ctx context.Context) error {
	return s.transition(ctx, "mark_user_needs_refresh", func(u *entity.CurrentUserState, _ *entity.CurrentBooksState) {
		u.NeedsRefresh = true
	})
}

func (s *Store) SetCurrentBook(ctx context.Context, book entity.Book) error {
	return s.transition(ctx, "set_current_book", func(_ *entity.CurrentUserState, b *entity.CurrentBooksState) {
		b.Book = book.Clone()
	})
}

func (s *Store) RemoveCurrentBook(ctx context.Context) error {
	return s.transition(ctx, "remove_current_book", func(_ *entity.CurrentUserState, b *entity.CurrentBooksState) {
		b.Book = entity.DefaultCurrentBooksState().Book
	})
}

func (s *Store) SetCurrentBooks(ctx context.Context, books []entity.Book) error {
	return s.transition(ctx, "set_current_books", func(_ *entity.CurrentUserState, b *entity.CurrentBooksState) {
		b.Books = make([]entity.Book, len(books))
		for i, book := range books {
			b.Books[i] = book.Clone()
		}
	})
}

// ClearCurrentBooks очищает только список книг; текущая книга и флаг остаются
func (s *Store) ClearCurrentBooks(ctx context.Context) error {
	return s.transition(ctx, "clear_current_books", func(_ *entity.CurrentUserState, b *entity.CurrentBooksState) {
		b.Books = []entity.Book{}
	})
}

func (s *Store) SetBooksNeedRefresh(ctx context.Context, needsRefresh bool) error {
	return s.transition(ctx, "set_books_need_refresh", func(_ *entity.CurrentUserState, b *entity.CurrentBooksState) {
		b.NeedsRefresh = needsRefresh
	})
}

// transition строит следующий снимок, сохраняет оба среза и только после этого
// применяет снимок в памяти. Ошибка хранилища оставляет память без изменений.
func (s *Store) transition(ctx context.Context, name string, apply func(*entity.CurrentUserState, *entity.CurrentBooksState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nextUser := s.user.Clone()
	nextBooks := s.books.Clone()
	apply(&nextUser, &nextBooks)
	nextBooks.Normalize()

	err := s.persist(ctx, nextUser, nextBooks)
	metrics.RecordStateTransition(name, err)
	if err != nil {
		s.log.Error().Err(err).Str("transition", name).Msg("failed to persist client state")
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}

	s.user = nextUser
	s.books = nextBooks
	return nil
}

type persistedSlice struct {
	key     string
	data    []byte
	changed bool
}

// persist пишет неизмененный срез первым, измененный последним: если запись
// оборвется, в хранилище не останется перехода, о котором вызывающий узнал как о неудаче.
// Вызывается под s.mu.
func (s *Store) persist(ctx context.Context, user entity.CurrentUserState, books entity.CurrentBooksState) error {
	userSlice, err := s.encode(CurrentUserKey, user, s.user)
	if err != nil {
		return err
	}
	booksSlice, err := s.encode(CurrentBooksKey, books, s.books)
	if err != nil {
		return err
	}

	order := []persistedSlice{userSlice, booksSlice}
	if userSlice.changed && !booksSlice.changed {
		order = []persistedSlice{booksSlice, userSlice}
	}

	for _, slice := range order {
		if err := s.storage.Save(ctx, slice.key, slice.data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) encode(key string, next, current interface{}) (persistedSlice, error) {
	data, err := json.Marshal(next)
	if err != nil {
		return persistedSlice{}, fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	currentData, err := json.Marshal(current)
	if err != nil {
		return persistedSlice{}, fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return persistedSlice{key: key, data: data, changed: !bytes.Equal(data, currentData)}, nil
}
