package repository

import (
	"context"
	"errors"
)

// ErrStateNotFound запись состояния еще ни разу не сохранялась
var ErrStateNotFound = errors.New("client state entry not found")

// StateStorage долговременное хранилище снимков состояния клиента.
// Аналог localStorage: именованные записи с JSON значением.
type StateStorage interface {
	// Load читает запись; ErrStateNotFound если ее нет
	Load(ctx context.Context, name string) ([]byte, error)

	// Save полностью перезаписывает запись
	Save(ctx context.Context, name string, value []byte) error
}
