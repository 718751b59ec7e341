package http

import (
	"context"
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
)

const reviewsResource = "reviews"

// ReviewClient клиент Review API
type ReviewClient struct {
	api *APIClient
}

func NewReviewClient(api *APIClient) *ReviewClient {
	return &ReviewClient{api: api}
}

func reviewPath(reviewID string) string {
	return "/api/reviews/" + escape(reviewID)
}

// FindReviewByID получает отзыв по ID
func (c *ReviewClient) FindReviewByID(ctx context.Context, reviewID string) (*entity.Review, error) {
	var review entity.Review
	if err := c.api.do(ctx, reviewsResource, http.MethodGet, reviewPath(reviewID), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// CreateReview создает отзыв
func (c *ReviewClient) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	var review entity.Review
	if err := c.api.do(ctx, reviewsResource, http.MethodPost, "/api/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// AddReviewLiker добавляет пользователя в likedUsers отзыва
func (c *ReviewClient) AddReviewLiker(ctx context.Context, reviewID string, userID string) (*entity.Review, error) {
	return c.mutateLikers(ctx, http.MethodPost, reviewID, userID)
}

// RemoveReviewLiker удаляет пользователя из likedUsers отзыва
func (c *ReviewClient) RemoveReviewLiker(ctx context.Context, reviewID string, userID string) (*entity.Review, error) {
	return c.mutateLikers(ctx, http.MethodDelete, reviewID, userID)
}

func (c *ReviewClient) mutateLikers(ctx context.Context, method, reviewID, userID string) (*entity.Review, error) {
	var review entity.Review
	body := entity.LikerRequest{UserID: userID}
	if err := c.api.do(ctx, reviewsResource, method, reviewPath(reviewID)+"/likedUsers", body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

var _ infrastructure.ReviewServiceClient = (*ReviewClient)(nil)
