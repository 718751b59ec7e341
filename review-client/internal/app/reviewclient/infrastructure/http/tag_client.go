package http

import (
	"context"
	"net/http"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
)

const tagsResource = "tags"

// TagClient клиент Tag API
type TagClient struct {
	api *APIClient
}

func NewTagClient(api *APIClient) *TagClient {
	return &TagClient{api: api}
}

func (c *TagClient) FindTagByID(ctx context.Context, tagID string) (*entity.Tag, error) {
	var tag entity.Tag
	if err := c.api.do(ctx, tagsResource, http.MethodGet, "/api/tags/"+escape(tagID), nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (c *TagClient) CreateTag(ctx context.Context, label string) (*entity.Tag, error) {
	var tag entity.Tag
	body := entity.CreateTagRequest{Label: label}
	if err := c.api.do(ctx, tagsResource, http.MethodPost, "/api/tags", body, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

var _ infrastructure.TagServiceClient = (*TagClient)(nil)
