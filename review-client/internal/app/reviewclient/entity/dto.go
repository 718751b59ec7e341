package entity

// CreateReviewRequest - запрос на создание отзыва в Review Service
type CreateReviewRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Body     string   `json:"body" validate:"required"`
	AuthorID string   `json:"author_id" validate:"required"`
	BookOLID string   `json:"olid,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// WriteReviewRequest - новый отзыв к книге от имени зрителя.
// Tags - подписи тегов, теги создаются перед отзывом.
type WriteReviewRequest struct {
	Title string   `json:"title" validate:"required,max=200"`
	Body  string   `json:"body" validate:"required"`
	Tags  []string `json:"tags" validate:"max=10,dive,required,max=50"`
}

// WriteReviewResult созданный отзыв и книга после привязки
type WriteReviewResult struct {
	Review *Review `json:"review"`
	Book   *Book   `json:"book"`
}

// BookReviewRequest - привязка/отвязка отзыва к книге
type BookReviewRequest struct {
	ReviewID string `json:"reviewID" validate:"required"`
}

// SignInRequest - установка текущего пользователя после аутентификации
type SignInRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// LikerRequest тело запроса к /reviews/{id}/likedUsers
type LikerRequest struct {
	UserID string `json:"userId"`
}

// LikedReviewRequest тело запроса к /users/{id}/likedReviews
type LikedReviewRequest struct {
	ReviewID string `json:"reviewId"`
}

// CreateTagRequest тело запроса к /tags
type CreateTagRequest struct {
	Label string `json:"label"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error          string `json:"error"`
	Message        string `json:"message,omitempty"`
	Dependency     string `json:"dependency,omitempty"`
	SignInRequired bool   `json:"sign_in_required,omitempty"`
	ResyncRequired bool   `json:"resync_required,omitempty"`
}
