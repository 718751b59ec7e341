package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"bookreviews/pkg/logger"
	"bookreviews/pkg/metrics"
	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// LikeCoordinator переключает лайк между отзывом и пользователем.
// Две независимые удаленные мутации без транзакции: сначала сторона отзыва,
// затем сторона пользователя. Компенсаций нет, вместо них пара помечается
// устаревшей и следующее переключение начинается с повторной загрузки.
type LikeCoordinator struct {
	reviews   infrastructure.ReviewServiceClient
	users     infrastructure.UserServiceClient
	publisher infrastructure.MessagePublisher

	mu           sync.Mutex
	staleReviews map[string]struct{}
	staleUsers   map[string]struct{}

	log zerolog.Logger
}

// NewLikeCoordinator создает координатор; publisher может быть nil
func NewLikeCoordinator(
	reviews infrastructure.ReviewServiceClient,
	users infrastructure.UserServiceClient,
	publisher infrastructure.MessagePublisher,
) *LikeCoordinator {
	return &LikeCoordinator{
		reviews:      reviews,
		users:        users,
		publisher:    publisher,
		staleReviews: make(map[string]struct{}),
		staleUsers:   make(map[string]struct{}),
		log:          logger.WithComponent("like_coordinator"),
	}
}

// ToggleLike инвертирует текущее состояние лайка зрителя
func (c *LikeCoordinator) ToggleLike(ctx context.Context, reviewID string, viewer *entity.User) (*entity.LikeResult, error) {
	return c.apply(ctx, reviewID, viewer, func(current bool) bool { return !current })
}

// SetLike явно ставит или снимает лайк. Если запись зрителя уже в нужном
// состоянии, мутаций нет и возвращается свежее состояние с сервера.
func (c *LikeCoordinator) SetLike(ctx context.Context, reviewID string, viewer *entity.User, liked bool) (*entity.LikeResult, error) {
	return c.apply(ctx, reviewID, viewer, func(bool) bool { return liked })
}

// NeedsResync true, если отзыв или пользователь помечены после частичной неудачи
func (c *LikeCoordinator) NeedsResync(reviewID, userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, reviewStale := c.staleReviews[reviewID]
	_, userStale := c.staleUsers[userID]
	return reviewStale || userStale
}

func (c *LikeCoordinator) apply(ctx context.Context, reviewID string, viewer *entity.User, decide func(bool) bool) (*entity.LikeResult, error) {
	if viewer == nil || viewer.ID == "" {
		return nil, c.fail(&LikeError{Kind: FailureUnauthenticated, ReviewID: reviewID})
	}
	userID := viewer.ID
	if reviewID == "" {
		return nil, c.fail(&LikeError{Kind: FailureNotFound, UserID: userID})
	}

	user := viewer
	var review *entity.Review

	resync := c.NeedsResync(reviewID, userID)
	if resync {
		metrics.LikeResyncsTotal.Inc()
		c.log.Info().
			Str("review_id", reviewID).
			Str("user_id", userID).
			Msg("pair marked stale, refetching before toggle")

		fresh, err := c.fetchPair(ctx, reviewID, userID)
		if err != nil {
			kind := FailureRefetch
			if errors.Is(err, infrastructure.ErrNotFound) {
				kind = FailureNotFound
			}
			return nil, c.fail(&LikeError{Kind: kind, ReviewID: reviewID, UserID: userID, Err: wrapRemote(err)})
		}
		user, review = fresh.User, fresh.Review
	}

	// Источник истины "лайкнуто ли мной" - запись пользователя
	current := user.HasLikedReview(reviewID)
	target := decide(current)

	userDone := current == target
	reviewDone := userDone
	if review != nil {
		// После повторной загрузки каждая сторона чинится только если расходится
		reviewDone = review.HasLiker(userID) == target
	}

	if !reviewDone {
		if err := c.mutateReview(ctx, reviewID, userID, target); err != nil {
			kind := FailureReviewMutation
			switch {
			case errors.Is(err, infrastructure.ErrNotFound):
				kind = FailureNotFound
			case errors.Is(err, infrastructure.ErrUnauthenticated):
				kind = FailureUnauthenticated
			}
			return nil, c.fail(&LikeError{Kind: kind, ReviewID: reviewID, UserID: userID, Err: wrapRemote(err)})
		}
	}

	if !userDone {
		if err := c.mutateUser(ctx, userID, reviewID, target); err != nil {
			c.markStale(reviewID, userID)
			c.publish(ctx, entity.LikeEventPartialFailure, reviewID, userID)
			return nil, c.fail(&LikeError{
				Kind:                 FailureUserMutation,
				ReviewAlreadyUpdated: true,
				ReviewID:             reviewID,
				UserID:               userID,
				Err:                  wrapRemote(err),
			})
		}
	}

	// Сервер единственный арбитр итогового состояния: возвращаем свежую пару
	result, err := c.fetchPair(ctx, reviewID, userID)
	if err != nil {
		c.markStale(reviewID, userID)
		return nil, c.fail(&LikeError{Kind: FailureRefetch, ReviewID: reviewID, UserID: userID, Err: wrapRemote(err)})
	}
	result.Liked = target

	if result.Review.HasLiker(userID) != result.User.HasLikedReview(reviewID) {
		// Другой клиент изменил одну из сторон, следующее переключение начнется с загрузки
		c.markStale(reviewID, userID)
		c.log.Warn().
			Str("review_id", reviewID).
			Str("user_id", userID).
			Msg("refetched like state diverged")
	} else {
		c.clearStale(reviewID, userID)
	}

	if reviewDone && userDone {
		metrics.RecordLikeOutcome("noop")
		return result, nil
	}

	eventType := entity.LikeEventRemoved
	if target {
		eventType = entity.LikeEventAdded
	}
	c.publish(ctx, eventType, reviewID, userID)

	metrics.RecordLikeOutcome("success")
	c.log.Info().
		Str("review_id", reviewID).
		Str("user_id", userID).
		Bool("liked", target).
		Msg("like toggled")

	return result, nil
}

func (c *LikeCoordinator) mutateReview(ctx context.Context, reviewID, userID string, like bool) error {
	var err error
	if like {
		_, err = c.reviews.AddReviewLiker(ctx, reviewID, userID)
	} else {
		_, err = c.reviews.RemoveReviewLiker(ctx, reviewID, userID)
	}
	return err
}

func (c *LikeCoordinator) mutateUser(ctx context.Context, userID, reviewID string, like bool) error {
	var err error
	if like {
		_, err = c.users.AddUserLikedReview(ctx, userID, reviewID)
	} else {
		_, err = c.users.RemoveUserLikedReview(ctx, userID, reviewID)
	}
	return err
}

// fetchPair загружает отзыв и пользователя параллельно
func (c *LikeCoordinator) fetchPair(ctx context.Context, reviewID, userID string) (*entity.LikeResult, error) {
	var (
		review *entity.Review
		user   *entity.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.reviews.FindReviewByID(gctx, reviewID)
		if err != nil {
			return fmt.Errorf("failed to refetch review: %w", err)
		}
		review = r
		return nil
	})
	g.Go(func() error {
		u, err := c.users.FindUserByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to refetch user: %w", err)
		}
		user = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.LikeResult{Review: review, User: user}, nil
}

func (c *LikeCoordinator) markStale(reviewID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staleReviews[reviewID] = struct{}{}
	c.staleUsers[userID] = struct{}{}
}

func (c *LikeCoordinator) clearStale(reviewID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.staleReviews, reviewID)
	delete(c.staleUsers, userID)
}

func (c *LikeCoordinator) fail(err *LikeError) error {
	metrics.RecordLikeOutcome(string(err.Kind))
	c.log.Warn().
		Err(err).
		Str("review_id", err.ReviewID).
		Str("user_id", err.UserID).
		Str("kind", string(err.Kind)).
		Bool("review_already_updated", err.ReviewAlreadyUpdated).
		Msg("like toggle failed")
	return err
}

// publish отправляет событие в Kafka; ошибки только логируются
func (c *LikeCoordinator) publish(ctx context.Context, eventType, reviewID, userID string) {
	if c.publisher == nil {
		return
	}

	event := entity.LikeEvent{
		EventType: eventType,
		ReviewID:  reviewID,
		UserID:    userID,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to marshal like event")
		return
	}

	if err := c.publisher.PublishMessage(ctx, reviewID, data); err != nil {
		c.log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish like event")
	}
}
