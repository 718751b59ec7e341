package http

import (
	"context"
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
)

const usersResource = "users"

// UserClient клиент User API
type UserClient struct {
	api *APIClient
}

func NewUserClient(api *APIClient) *UserClient {
	return &UserClient{api: api}
}

func userPath(userID string) string {
	return "/api/users/" + escape(userID)
}

// FindUserByID получает пользователя по ID
func (c *UserClient) FindUserByID(ctx context.Context, userID string) (*entity.User, error) {
	var user entity.User
	if err := c.api.do(ctx, usersResource, http.MethodGet, userPath(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// AddUserLikedReview добавляет отзыв в likedReviews пользователя
func (c *UserClient) AddUserLikedReview(ctx context.Context, userID string, reviewID string) (*entity.User, error) {
	return c.mutateLikedReviews(ctx, http.MethodPost, userID, reviewID)
}

// RemoveUserLikedReview удаляет отзыв из likedReviews пользователя
func (c *UserClient) RemoveUserLikedReview(ctx context.Context, userID string, reviewID string) (*entity.User, error) {
	return c.mutateLikedReviews(ctx, http.MethodDelete, userID, reviewID)
}

func (c *UserClient) mutateLikedReviews(ctx context.Context, method, userID, reviewID string) (*entity.User, error) {
	var user entity.User
	body := entity.LikedReviewRequest{ReviewID: reviewID}
	if err := c.api.do(ctx, usersResource, method, userPath(userID)+"/likedReviews", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ infrastructure.UserServiceClient = (*UserClient)(nil)
