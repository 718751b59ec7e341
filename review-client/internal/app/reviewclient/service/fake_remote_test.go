package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"bookreviews/review-client/internal/app/reviewclient/entity"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
)

// fakeRemote хранит отзывы, пользователей и теги в памяти и считает вызовы.
// Мутации имеют семантику множества, как у настоящего API.
type fakeRemote struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
	users   map[string]*entity.User
	tags    map[string]*entity.Tag

	calls map[string]int
	// failures[method] - ошибка, которую вернет следующий вызов метода
	failures map[string]error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		reviews:  make(map[string]*entity.Review),
		users:    make(map[string]*entity.User),
		tags:     make(map[string]*entity.Tag),
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

func (f *fakeRemote) addReview(r entity.Review) {
	f.reviews[r.ID] = &r
}

func (f *fakeRemote) addUser(u entity.User) {
	f.users[u.ID] = &u
}

func (f *fakeRemote) addTag(t entity.Tag) {
	f.tags[t.ID] = &t
}

func (f *fakeRemote) failNext(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = err
}

func (f *fakeRemote) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeRemote) mutationCount() int {
	return f.callCount("AddReviewLiker") + f.callCount("RemoveReviewLiker") +
		f.callCount("AddUserLikedReview") + f.callCount("RemoveUserLikedReview")
}

func (f *fakeRemote) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// begin регистрирует вызов; вызывается под f.mu
func (f *fakeRemote) begin(method string) error {
	f.calls[method]++
	if err, ok := f.failures[method]; ok {
		delete(f.failures, method)
		return err
	}
	return nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, infrastructure.ErrNotFound)
}

func addUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(s string) bool { return s == id })
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r
	c.Tags = slices.Clone(r.Tags)
	c.LikedUsers = slices.Clone(r.LikedUsers)
	return &c
}

func (f *fakeRemote) FindReviewByID(_ context.Context, reviewID string) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("FindReviewByID"); err != nil {
		return nil, err
	}
	r, ok := f.reviews[reviewID]
	if !ok {
		return nil, notFound("review", reviewID)
	}
	return cloneReview(r), nil
}

func (f *fakeRemote) CreateReview(_ context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateReview"); err != nil {
		return nil, err
	}
	r := &entity.Review{
		ID:         fmt.Sprintf("r%d", len(f.reviews)+1),
		Title:      req.Title,
		Body:       req.Body,
		AuthorID:   req.AuthorID,
		Tags:       slices.Clone(req.Tags),
		LikedUsers: []string{},
	}
	f.reviews[r.ID] = r
	return cloneReview(r), nil
}

func (f *fakeRemote) AddReviewLiker(_ context.Context, reviewID, userID string) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AddReviewLiker"); err != nil {
		return nil, err
	}
	r, ok := f.reviews[reviewID]
	if !ok {
		return nil, notFound("review", reviewID)
	}
	r.LikedUsers = addUnique(r.LikedUsers, userID)
	return cloneReview(r), nil
}

func (f *fakeRemote) RemoveReviewLiker(_ context.Context, reviewID, userID string) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("RemoveReviewLiker"); err != nil {
		return nil, err
	}
	r, ok := f.reviews[reviewID]
	if !ok {
		return nil, notFound("review", reviewID)
	}
	r.LikedUsers = removeID(r.LikedUsers, userID)
	return cloneReview(r), nil
}

func (f *fakeRemote) FindUserByID(_ context.Context, userID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("FindUserByID"); err != nil {
		return nil, err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, notFound("user", userID)
	}
	return u.Clone(), nil
}

func (f *fakeRemote) AddUserLikedReview(_ context.Context, userID, reviewID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("AddUserLikedReview"); err != nil {
		return nil, err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, notFound("user", userID)
	}
	u.LikedReviews = addUnique(u.LikedReviews, reviewID)
	return u.Clone(), nil
}

func (f *fakeRemote) RemoveUserLikedReview(_ context.Context, userID, reviewID string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("RemoveUserLikedReview"); err != nil {
		return nil, err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, notFound("user", userID)
	}
	u.LikedReviews = removeID(u.LikedReviews, reviewID)
	return u.Clone(), nil
}

func (f *fakeRemote) FindTagByID(_ context.Context, tagID string) (*entity.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("FindTagByID"); err != nil {
		return nil, err
	}
	t, ok := f.tags[tagID]
	if !ok {
		return nil, notFound("tag", tagID)
	}
	c := *t
	return &c, nil
}

func (f *fakeRemote) CreateTag(_ context.Context, label string) (*entity.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateTag"); err != nil {
		return nil, err
	}
	t := &entity.Tag{ID: fmt.Sprintf("t%d", len(f.tags)+1), Label: label}
	f.tags[t.ID] = t
	c := *t
	return &c, nil
}

var (
	_ infrastructure.ReviewServiceClient = (*fakeRemote)(nil)
	_ infrastructure.UserServiceClient   = (*fakeRemote)(nil)
	_ infrastructure.TagServiceClient    = (*fakeRemote)(nil)
)
