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

// ReviewPageService управляет страницей отзыва: сборка модели и лайки.
// Координирует работу Assembler, Coordinator и локального состояния.
type ReviewPageService struct {
	assembler   *ReviewAssembler
	coordinator *LikeCoordinator
	users       infrastructure.UserServiceClient
	store       StateStore
	log         zerolog.Logger
}

func NewReviewPageService(
	assembler *ReviewAssembler,
	coordinator *LikeCoordinator,
	users infrastructure.UserServiceClient,
	store StateStore,
) *ReviewPageService {
	return &ReviewPageService{
		assembler:   assembler,
		coordinator: coordinator,
		users:       users,
		store:       store,
		log:         logger.WithComponent("review_page_service"),
	}
}

// GetReviewPage собирает страницу отзыва. Если зритель - текущий пользователь
// с флагом обновления, его запись в состоянии заменяется свежей.
func (s *ReviewPageService) GetReviewPage(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error) {
	view, err := s.assembler.Assemble(ctx, reviewID, viewerID)
	if err != nil {
		return nil, err
	}

	current := s.store.CurrentUser()
	if view.Viewer != nil && current.UserID == viewerID && current.NeedsRefresh {
		if err := s.store.SetCurrentUser(ctx, view.Viewer); err != nil {
			s.log.Warn().Err(err).Str("user_id", viewerID).Msg("failed to refresh current user")
		}
	}

	return view, nil
}

// ToggleLike переключает лайк зрителя и возвращает пересобранную страницу
func (s *ReviewPageService) ToggleLike(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error) {
	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	result, err := s.coordinator.ToggleLike(ctx, reviewID, viewer)
	return s.afterLike(ctx, reviewID, viewerID, result, err)
}

// SetLike явно ставит (liked=true) или снимает лайк
func (s *ReviewPageService) SetLike(ctx context.Context, reviewID, viewerID string, liked bool) (*entity.ReviewView, error) {
	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	result, err := s.coordinator.SetLike(ctx, reviewID, viewer, liked)
	return s.afterLike(ctx, reviewID, viewerID, result, err)
}

// resolveViewer берет запись зрителя из состояния, если она актуальна,
// иначе загружает ее. Пустой viewerID дает nil (координатор ответит Unauthenticated).
func (s *ReviewPageService) resolveViewer(ctx context.Context, viewerID string) (*entity.User, error) {
	if viewerID == "" {
		return nil, nil
	}

	current := s.store.CurrentUser()
	if current.UserID == viewerID && current.User != nil && !current.NeedsRefresh {
		return current.User, nil
	}

	user, err := s.users.FindUserByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, infrastructure.ErrNotFound) {
			return nil, fmt.Errorf("viewer %s does not exist: %w", viewerID, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to fetch viewer: %w", wrapRemote(err))
	}

	return user, nil
}

func (s *ReviewPageService) afterLike(ctx context.Context, reviewID, viewerID string, result *entity.LikeResult, likeErr error) (*entity.ReviewView, error) {
	isCurrent := viewerID != "" && s.store.CurrentUser().UserID == viewerID

	if likeErr != nil {
		var le *LikeError
		if isCurrent && errors.As(likeErr, &le) && (le.ReviewAlreadyUpdated || le.Kind == FailureRefetch) {
			if err := s.store.MarkUserNeedsRefresh(ctx); err != nil {
				s.log.Warn().Err(err).Str("user_id", viewerID).Msg("failed to mark current user for refresh")
			}
		}
		return nil, likeErr
	}

	// Кешированная запись заменяется целиком, без локальных правок
	if isCurrent {
		if err := s.store.SetCurrentUser(ctx, result.User); err != nil {
			s.log.Warn().Err(err).Str("user_id", viewerID).Msg("failed to store refreshed user")
		}
	}

	// Лайк уже сохранен: ошибка пересборки не должна выглядеть как неудача,
	// иначе повтор переключателя отменит лайк
	view, err := s.assembler.Assemble(ctx, reviewID, viewerID)
	if err != nil {
		s.log.Warn().Err(err).
			Str("review_id", reviewID).
			Str("user_id", viewerID).
			Msg("like saved, returning incomplete view")
		return incompleteView(result), nil
	}

	return view, nil
}

// incompleteView строит страницу из свежей пары записей координатора
func incompleteView(result *entity.LikeResult) *entity.ReviewView {
	view := &entity.ReviewView{
		Review:        *result.Review,
		Tags:          []entity.Tag{},
		Likers:        []entity.LikerIdentity{},
		Viewer:        result.User,
		LikedByViewer: result.Liked,
		CanLike:       result.User.Role != entity.RoleAuthor,
		Incomplete:    true,
	}
	return view
}
