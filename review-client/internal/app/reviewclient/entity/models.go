package entity

import (
	"slices"
	"strings"
	"time"
)

// Role роль пользователя на платформе
type Role string

const (
	RoleReader Role = "Reader"
	RoleAuthor Role = "Author"
)

// User пользователь из User Service
// LikedReviews - множество ID отзывов, без повторов
type User struct {
	ID           string   `json:"_id"`
	Username     string   `json:"username"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email,omitempty"`
	Role         Role     `json:"role"`
	LikedReviews []string `json:"likedReviews"`
}

// DisplayName возвращает имя для отображения на странице
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// HasLikedReview проверяет, есть ли отзыв в списке понравившихся
func (u *User) HasLikedReview(reviewID string) bool {
	return slices.Contains(u.LikedReviews, reviewID)
}

// Clone возвращает копию без общих слайсов
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.LikedReviews = slices.Clone(u.LikedReviews)
	return &c
}

// Review отзыв из Review Service
type Review struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	AuthorID   string   `json:"author_id"`
	BookOLID   string   `json:"olid,omitempty"`
	Tags       []string `json:"tags"`       // Упорядоченная последовательность ID тегов
	LikedUsers []string `json:"likedUsers"` // Множество ID пользователей
}

// HasLiker проверяет, есть ли пользователь среди лайкнувших
func (r *Review) HasLiker(userID string) bool {
	return slices.Contains(r.LikedUsers, userID)
}

// Tag тег отзыва, неизменяемый со стороны клиента
type Tag struct {
	ID    string `json:"_id"`
	Label string `json:"label"`
}

// Book локальная проекция книги, привязанная к Open Library ID
type Book struct {
	ID         string   `json:"_id"`
	OLID       string   `json:"olid"`
	Reviews    []string `json:"reviews"`
	LikedUsers []string `json:"likedUsers"`
}

// Clone возвращает копию без общих слайсов
func (b Book) Clone() Book {
	b.Reviews = slices.Clone(b.Reviews)
	b.LikedUsers = slices.Clone(b.LikedUsers)
	return b
}

// LikerIdentity - то, что показывается в списке "Liked By"
type LikerIdentity struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ReviewView собранная модель страницы отзыва
type ReviewView struct {
	Review        Review          `json:"review"`
	Author        User            `json:"author"`
	Tags          []Tag           `json:"tags"`   // Та же длина и порядок, что и Review.Tags
	Likers        []LikerIdentity `json:"likers"` // Порядок не значим
	Viewer        *User           `json:"viewer,omitempty"`
	LikedByViewer bool            `json:"liked_by_viewer"`
	CanLike       bool            `json:"can_like"`
	// Incomplete: лайк сохранен, но страницу пересобрать не удалось.
	// Review и Viewer свежие, автор, теги и лайкнувшие не заполнены.
	Incomplete bool `json:"incomplete,omitempty"`
}

// LikeResult свежая пара записей после переключения лайка
type LikeResult struct {
	Review *Review `json:"review"`
	User   *User   `json:"user"`
	Liked  bool    `json:"liked"`
}

// Типы событий о лайках
const (
	LikeEventAdded          = "LIKE_ADDED"
	LikeEventRemoved        = "LIKE_REMOVED"
	LikeEventPartialFailure = "LIKE_PARTIAL_FAILURE"
)

// LikeEvent событие для Kafka
type LikeEvent struct {
	EventType string    `json:"event_type"`
	ReviewID  string    `json:"review_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
