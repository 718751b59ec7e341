package service

import (
	"context"
	"testing"

	"bookreviews/review-client/internal/app/reviewclient/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssemblyFixture() *fakeRemote {
	remote := newFakeRemote()
	remote.addReview(entity.Review{
		ID:         "r1",
		Title:      "Dune",
		AuthorID:   "a1",
		Tags:       []string{"t1", "t2", "t1", "t3"},
		LikedUsers: []string{"u1", "u2", "u3"},
	})
	remote.addUser(entity.User{ID: "a1", FirstName: "Frank", LastName: "Herbert", Role: entity.RoleAuthor})
	remote.addUser(entity.User{ID: "u1", Username: "first", Role: entity.RoleReader, LikedReviews: []string{"r1"}})
	remote.addUser(entity.User{ID: "u2", FirstName: "Second", Role: entity.RoleReader, LikedReviews: []string{"r1"}})
	remote.addUser(entity.User{ID: "u3", Username: "third", Role: entity.RoleReader, LikedReviews: []string{"r1"}})
	remote.addUser(entity.User{ID: "v1", Username: "viewer", Role: entity.RoleReader, LikedReviews: []string{}})
	remote.addTag(entity.Tag{ID: "t1", Label: "sci-fi"})
	remote.addTag(entity.Tag{ID: "t2", Label: "classic"})
	remote.addTag(entity.Tag{ID: "t3", Label: "desert"})
	return remote
}

func TestAssemble_Success(t *testing.T) {
	// Arrange
	remote := newAssemblyFixture()
	assembler := NewReviewAssembler(remote, remote, remote)

	// Act
	view, err := assembler.Assemble(context.Background(), "r1", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "r1", view.Review.ID)
	assert.Equal(t, "Frank Herbert", view.Author.DisplayName())
	assert.Nil(t, view.Viewer)
	assert.False(t, view.LikedByViewer)
	assert.True(t, view.CanLike)
	assert.ElementsMatch(t, []entity.LikerIdentity{
		{ID: "u1", DisplayName: "first"},
		{ID: "u2", DisplayName: "Second"},
		{ID: "u3", DisplayName: "third"},
	}, view.Likers)
}

func TestAssemble_TagsKeepOrderAndDuplicates(t *testing.T) {
	remote := newAssemblyFixture()
	assembler := NewReviewAssembler(remote, remote, remote)

	view, err := assembler.Assemble(context.Background(), "r1", "")

	require.NoError(t, err)
	require.Len(t, view.Tags, 4)
	labels := make([]string, len(view.Tags))
	for i, tag := range view.Tags {
		labels[i] = tag.Label
	}
	assert.Equal(t, []string{"sci-fi", "classic", "sci-fi", "desert"}, labels)
	assert.Equal(t, 4, remote.callCount("FindTagByID"))
}

func TestAssemble_WithViewer(t *testing.T) {
	// Arrange
	remote := newAssemblyFixture()
	assembler := NewReviewAssembler(remote, remote, remote)

	// Act
	view, err := assembler.Assemble(context.Background(), "r1", "u2")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, view.Viewer)
	assert.Equal(t, "u2", view.Viewer.ID)
	assert.True(t, view.LikedByViewer)
	assert.True(t, view.CanLike)
}

func TestAssemble_AuthorViewerCannotLike(t *testing.T) {
	remote := newAssemblyFixture()
	assembler := NewReviewAssembler(remote, remote, remote)

	view, err := assembler.Assemble(context.Background(), "r1", "a1")

	require.NoError(t, err)
	assert.False(t, view.CanLike)
}

func TestAssemble_DeletedLikerFiltered(t *testing.T) {
	// Arrange
	remote := newAssemblyFixture()
	delete(remote.users, "u2")
	assembler := NewReviewAssembler(remote, remote, remote)

	// Act
	view, err := assembler.Assemble(context.Background(), "r1", "")

	// Assert
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.LikerIdentity{
		{ID: "u1", DisplayName: "first"},
		{ID: "u3", DisplayName: "third"},
	}, view.Likers)
}

func TestAssemble_DuplicateLikersResolvedOnce(t *testing.T) {
	remote := newAssemblyFixture()
	remote.reviews["r1"].LikedUsers = []string{"u1", "u1", "u3"}
	assembler := NewReviewAssembler(remote, remote, remote)

	view, err := assembler.Assemble(context.Background(), "r1", "")

	require.NoError(t, err)
	assert.Len(t, view.Likers, 2)
}

func TestAssemble_NoLikersNoTags(t *testing.T) {
	remote := newAssemblyFixture()
	remote.reviews["r1"].Tags = nil
	remote.reviews["r1"].LikedUsers = []string{}
	assembler := NewReviewAssembler(remote, remote, remote)

	view, err := assembler.Assemble(context.Background(), "r1", "")

	require.NoError(t, err)
	assert.Empty(t, view.Tags)
	assert.NotNil(t, view.Likers)
	assert.Empty(t, view.Likers)
	assert.Zero(t, remote.callCount("FindTagByID"))
}

func TestAssemble_Failures(t *testing.T) {
	tests := []struct {
		name       string
		arrange    func(remote *fakeRemote)
		viewerID   string
		dependency string
		sentinel   error
	}{
		{
			name:       "review missing",
			arrange:    func(remote *fakeRemote) { delete(remote.reviews, "r1") },
			dependency: DependencyReview,
			sentinel:   ErrNotFound,
		},
		{
			name:       "author missing",
			arrange:    func(remote *fakeRemote) { delete(remote.users, "a1") },
			dependency: DependencyAuthor,
			sentinel:   ErrNotFound,
		},
		{
			name:       "tag missing",
			arrange:    func(remote *fakeRemote) { delete(remote.tags, "t2") },
			dependency: DependencyTag,
			sentinel:   ErrNotFound,
		},
		{
			name:       "tag transport failure",
			arrange:    func(remote *fakeRemote) { remote.failNext("FindTagByID", errBackendDown) },
			dependency: DependencyTag,
			sentinel:   ErrTransportFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			remote := newAssemblyFixture()
			tt.arrange(remote)
			assembler := NewReviewAssembler(remote, remote, remote)

			// Act
			view, err := assembler.Assemble(context.Background(), "r1", tt.viewerID)

			// Assert
			assert.Nil(t, view)
			var assemblyErr *AssemblyError
			require.ErrorAs(t, err, &assemblyErr)
			assert.Equal(t, tt.dependency, assemblyErr.Dependency)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAssemble_LikerTransportFailureFailsAssembly(t *testing.T) {
	// Arrange - только лайкнувший u3 возвращает 503
	remote := newAssemblyFixture()
	remote.reviews["r1"].LikedUsers = []string{"u3"}
	users := &likerFailingRemote{fakeRemote: remote, failing: "u3"}
	assembler := NewReviewAssembler(remote, users, remote)

	// Act
	_, err := assembler.Assemble(context.Background(), "r1", "")

	// Assert
	var assemblyErr *AssemblyError
	require.ErrorAs(t, err, &assemblyErr)
	assert.Equal(t, DependencyLiker, assemblyErr.Dependency)
	assert.Equal(t, "u3", assemblyErr.ID)
	assert.ErrorIs(t, err, ErrTransportFailure)
}

// likerFailingRemote отвечает ошибкой транспорта для одного пользователя
type likerFailingRemote struct {
	*fakeRemote
	failing string
}

func (r *likerFailingRemote) FindUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if userID == r.failing {
		return nil, errBackendDown
	}
	return r.fakeRemote.FindUserByID(ctx, userID)
}

func TestAssemble_DeletedViewerIsAnonymous(t *testing.T) {
	// Arrange
	remote := newAssemblyFixture()
	assembler := NewReviewAssembler(remote, remote, remote)

	// Act
	view, err := assembler.Assemble(context.Background(), "r1", "ghost")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, view.Viewer)
	assert.False(t, view.LikedByViewer)
	assert.True(t, view.CanLike)
	assert.Equal(t, "r1", view.Review.ID)
}

func TestAssemble_ViewerTransportFailureFailsAssembly(t *testing.T) {
	// Arrange
	remote := newAssemblyFixture()
	users := &likerFailingRemote{fakeRemote: remote, failing: "v1"}
	assembler := NewReviewAssembler(remote, users, remote)

	// Act
	view, err := assembler.Assemble(context.Background(), "r1", "v1")

	// Assert
	assert.Nil(t, view)
	var assemblyErr *AssemblyError
	require.ErrorAs(t, err, &assemblyErr)
	assert.Equal(t, DependencyViewer, assemblyErr.Dependency)
	assert.ErrorIs(t, err, ErrTransportFailure)
}
