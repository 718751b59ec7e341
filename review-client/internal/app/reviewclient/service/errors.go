package service

import (
	"errors"
	"fmt"

	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrNotFound             = errors.New("not found")
	ErrUnauthenticated      = errors.New("sign in required")
	ErrTransportFailure     = errors.New("temporarily unavailable")
	ErrPartialConsistency   = errors.New("review and user like state diverged")
	ErrReviewMutationFailed = errors.New("failed to update review likers")
	ErrUserMutationFailed   = errors.New("failed to update user liked reviews")
	ErrRefetchFailed        = errors.New("failed to refetch like state")
)

// classify переводит ошибку транспорта в ошибку бизнес-логики
func classify(err error) error {
	switch {
	case errors.Is(err, infrastructure.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, infrastructure.ErrUnauthenticated):
		return ErrUnauthenticated
	default:
		return ErrTransportFailure
	}
}

// wrapRemote сохраняет исходную ошибку клиента и добавляет классификацию
func wrapRemote(err error) error {
	return fmt.Errorf("%w: %w", classify(err), err)
}

// FailureKind вид неудачи переключения лайка
type FailureKind string

const (
	FailureUnauthenticated FailureKind = "unauthenticated"
	FailureReviewMutation  FailureKind = "review_mutation"
	FailureUserMutation    FailureKind = "user_mutation"
	FailureNotFound        FailureKind = "not_found"
	FailureRefetch         FailureKind = "refetch"
)

func (k FailureKind) sentinel() error {
	switch k {
	case FailureUnauthenticated:
		return ErrUnauthenticated
	case FailureReviewMutation:
		return ErrReviewMutationFailed
	case FailureUserMutation:
		return ErrUserMutationFailed
	case FailureNotFound:
		return ErrNotFound
	default:
		return ErrRefetchFailed
	}
}

// LikeError результат неудачного переключения лайка.
// ReviewAlreadyUpdated == true означает, что сторона отзыва уже изменена,
// а сторона пользователя нет (частичная неконсистентность).
type LikeError struct {
	Kind                 FailureKind
	ReviewAlreadyUpdated bool
	ReviewID             string
	UserID               string
	Err                  error
}

func (e *LikeError) Error() string {
	msg := fmt.Sprintf("like review %s by user %s: %s", e.ReviewID, e.UserID, e.Kind.sentinel())
	if e.ReviewAlreadyUpdated {
		msg += " (review already updated)"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LikeError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.ReviewAlreadyUpdated {
		errs = append(errs, ErrPartialConsistency)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Зависимости сборки страницы отзыва
const (
	DependencyReview = "review"
	DependencyAuthor = "author"
	DependencyTag    = "tag"
	DependencyLiker  = "liker"
	DependencyViewer = "viewer"
)

// AssemblyError указывает, какая зависимость не загрузилась
type AssemblyError struct {
	Dependency string
	ID         string
	Err        error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("failed to fetch %s %s: %v", e.Dependency, e.ID, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

func newAssemblyError(dependency, id string, err error) *AssemblyError {
	return &AssemblyError{Dependency: dependency, ID: id, Err: wrapRemote(err)}
}
