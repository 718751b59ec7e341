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

// SessionService текущий пользователь клиента
type SessionService struct {
	users infrastructure.UserServiceClient
	store StateStore
	log   zerolog.Logger
}

func NewSessionService(users infrastructure.UserServiceClient, store StateStore) *SessionService {
	return &SessionService{
		users: users,
		store: store,
		log:   logger.WithComponent("session_service"),
	}
}

// SignIn загружает пользователя и делает его текущим
func (s *SessionService) SignIn(ctx context.Context, userID string) (*entity.CurrentUserState, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, wrapRemote(err))
	}

	if err := s.store.SetCurrentUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("user signed in")

	current := s.store.CurrentUser()
	return &current, nil
}

func (s *SessionService) SignOut(ctx context.Context) error {
	return s.store.ClearCurrentUser(ctx)
}

func (s *SessionService) Current() entity.CurrentUserState {
	return s.store.CurrentUser()
}

// RefreshCurrentUser перезагружает пользователя, если срез помечен.
// Удаленный на сервере пользователь снимается с сессии.
func (s *SessionService) RefreshCurrentUser(ctx context.Context) error {
	current := s.store.CurrentUser()
	if !current.NeedsRefresh || current.UserID == "" {
		return nil
	}

	user, err := s.users.FindUserByID(ctx, current.UserID)
	if err != nil {
		if errors.Is(err, infrastructure.ErrNotFound) {
			s.log.Warn().Str("user_id", current.UserID).Msg("current user no longer exists, signing out")
			return s.store.ClearCurrentUser(ctx)
		}
		return fmt.Errorf("failed to refresh user %s: %w", current.UserID, wrapRemote(err))
	}

	return s.store.SetCurrentUser(ctx, user)
}
