package service

import (
	"context"
	"errors"
	"time"

	"bookreviews/pkg/logger"
	"bookreviews/pkg/metrics"
	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReviewAssembler собирает модель страницы отзыва из нескольких API.
// Результат отдается только когда загружены все зависимости.
type ReviewAssembler struct {
	reviews infrastructure.ReviewServiceClient
	users   infrastructure.UserServiceClient
	tags    infrastructure.TagServiceClient
	log     zerolog.Logger
}

func NewReviewAssembler(
	reviews infrastructure.ReviewServiceClient,
	users infrastructure.UserServiceClient,
	tags infrastructure.TagServiceClient,
) *ReviewAssembler {
	return &ReviewAssembler{
		reviews: reviews,
		users:   users,
		tags:    tags,
		log:     logger.WithComponent("review_assembler"),
	}
}

// Assemble загружает отзыв, затем параллельно автора, каждый тег и каждого
// лайкнувшего. Зритель (если передан) грузится параллельно со всем остальным.
// Лайкнувший или зритель, которого больше нет (404), отбрасывается; любая другая
// ошибка проваливает всю сборку.
func (a *ReviewAssembler) Assemble(ctx context.Context, reviewID, viewerID string) (*entity.ReviewView, error) {
	start := time.Now()
	defer func() {
		metrics.AssemblyDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		review *entity.Review
		author *entity.User
		viewer *entity.User
		tags   []entity.Tag
		likers []*entity.LikerIdentity
	)

	g, gctx := errgroup.WithContext(ctx)

	if viewerID != "" {
		g.Go(func() error {
			u, err := a.users.FindUserByID(gctx, viewerID)
			if err != nil {
				// Удаленный зритель смотрит страницу как аноним
				if errors.Is(err, infrastructure.ErrNotFound) {
					a.log.Debug().Str("viewer_id", viewerID).Msg("viewer no longer exists, assembling anonymously")
					return nil
				}
				return newAssemblyError(DependencyViewer, viewerID, err)
			}
			viewer = u
			return nil
		})
	}

	g.Go(func() error {
		r, err := a.reviews.FindReviewByID(gctx, reviewID)
		if err != nil {
			return newAssemblyError(DependencyReview, reviewID, err)
		}
		review = r

		g.Go(func() error {
			u, err := a.users.FindUserByID(gctx, r.AuthorID)
			if err != nil {
				return newAssemblyError(DependencyAuthor, r.AuthorID, err)
			}
			author = u
			return nil
		})

		// Теги - упорядоченная последовательность, каждая позиция грузится отдельно
		tags = make([]entity.Tag, len(r.Tags))
		for i, tagID := range r.Tags {
			g.Go(func() error {
				t, err := a.tags.FindTagByID(gctx, tagID)
				if err != nil {
					return newAssemblyError(DependencyTag, tagID, err)
				}
				tags[i] = *t
				return nil
			})
		}

		likerIDs := uniqueIDs(r.LikedUsers)
		likers = make([]*entity.LikerIdentity, len(likerIDs))
		for i, likerID := range likerIDs {
			g.Go(func() error {
				u, err := a.users.FindUserByID(gctx, likerID)
				if err != nil {
					if errors.Is(err, infrastructure.ErrNotFound) {
						metrics.LikersFiltered.Inc()
						a.log.Debug().
							Str("review_id", reviewID).
							Str("liker_id", likerID).
							Msg("liker no longer exists, skipping")
						return nil
					}
					return newAssemblyError(DependencyLiker, likerID, err)
				}
				likers[i] = &entity.LikerIdentity{ID: u.ID, DisplayName: u.DisplayName()}
				return nil
			})
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		var assemblyErr *AssemblyError
		if errors.As(err, &assemblyErr) {
			metrics.RecordAssemblyFailure(assemblyErr.Dependency)
		}
		a.log.Warn().Err(err).Str("review_id", reviewID).Msg("review assembly failed")
		return nil, err
	}

	view := &entity.ReviewView{
		Review:  *review,
		Author:  *author,
		Tags:    tags,
		Likers:  make([]entity.LikerIdentity, 0, len(likers)),
		Viewer:  viewer,
		CanLike: viewer == nil || viewer.Role != entity.RoleAuthor,
	}
	for _, liker := range likers {
		if liker != nil {
			view.Likers = append(view.Likers, *liker)
		}
	}
	if viewer != nil {
		view.LikedByViewer = viewer.HasLikedReview(reviewID)
	}

	return view, nil
}

// uniqueIDs убирает повторы, сохраняя порядок первого появления
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
