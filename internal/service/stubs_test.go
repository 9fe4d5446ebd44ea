package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cityfeed/internal/models"
	"cityfeed/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn   func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	queryFn         func(context.Context, repository.PostFilter, uint) ([]*models.Post, int64, error)
	updateFn        func(context.Context, *models.Post) error
	softDeleteFn    func(context.Context, uint) error
	getReactionFn   func(context.Context, uint, uint) (*models.Reaction, error)
	setReactionFn   func(context.Context, uint, uint, bool) error
	clearReactionFn func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Query(ctx context.Context, filter repository.PostFilter, currentUserID uint) ([]*models.Post, int64, error) {
	return s.queryFn(ctx, filter, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *postRepoStub) GetReaction(ctx context.Context, userID, postID uint) (*models.Reaction, error) {
	return s.getReactionFn(ctx, userID, postID)
}
func (s *postRepoStub) SetReaction(ctx context.Context, userID, postID uint, isDislike bool) error {
	return s.setReactionFn(ctx, userID, postID, isDislike)
}
func (s *postRepoStub) ClearReaction(ctx context.Context, userID, postID uint) error {
	return s.clearReactionFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, IsActive: true}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		queryFn: func(_ context.Context, _ repository.PostFilter, _ uint) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:        func(_ context.Context, _ *models.Post) error { return nil },
		softDeleteFn:    func(_ context.Context, _ uint) error { return nil },
		getReactionFn:   func(_ context.Context, _, _ uint) (*models.Reaction, error) { return nil, nil },
		setReactionFn:   func(_ context.Context, _, _ uint, _ bool) error { return nil },
		clearReactionFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// reactionKey identifies a (user, post) pair in the in-memory reaction store.
type reactionKey struct {
	userID uint
	postID uint
}

// statefulPostRepo simulates reaction storage so toggle sequences can be
// exercised end to end without a database.
type statefulPostRepo struct {
	*postRepoStub
	mu        sync.Mutex
	reactions map[reactionKey]*models.Reaction
}

func newStatefulPostRepo() *statefulPostRepo {
	r := &statefulPostRepo{
		postRepoStub: noopPostRepo(),
		reactions:    map[reactionKey]*models.Reaction{},
	}
	r.getReactionFn = func(_ context.Context, userID, postID uint) (*models.Reaction, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if reaction, ok := r.reactions[reactionKey{userID, postID}]; ok {
			copied := *reaction
			return &copied, nil
		}
		return nil, nil
	}
	r.setReactionFn = func(_ context.Context, userID, postID uint, isDislike bool) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.reactions[reactionKey{userID, postID}] = &models.Reaction{
			UserID: userID, PostID: postID, IsDislike: isDislike,
		}
		return nil
	}
	r.clearReactionFn = func(_ context.Context, userID, postID uint) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.reactions, reactionKey{userID, postID})
		return nil
	}
	return r
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn    func(context.Context, uint, int) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	incrementPostsCountFn func(context.Context, uint, int) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) IncrementPostsCount(ctx context.Context, userID uint, delta int) error {
	return s.incrementPostsCountFn(ctx, userID, delta)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, City: "Austin", IsActive: true}, nil
		},
		getByIDWithPostsFn: func(_ context.Context, id uint, _ int) (*models.User, error) {
			return &models.User{ID: id, City: "Austin", IsActive: true}, nil
		},
		getByEmailFn:          func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:              func(_ context.Context, _ *models.User) error { return nil },
		updateFn:              func(_ context.Context, _ *models.User) error { return nil },
		incrementPostsCountFn: func(_ context.Context, _ uint, _ int) error { return nil },
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn     func(context.Context, *models.Reply) error
	getByIDFn    func(context.Context, uint) (*models.Reply, error)
	listByPostFn func(context.Context, uint) ([]models.Reply, error)
	deleteFn     func(context.Context, uint) error
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply) error {
	return s.createFn(ctx, reply)
}
func (s *replyRepoStub) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getByIDFn(ctx, id)
}
func (s *replyRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Reply, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *replyRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn:     func(_ context.Context, _ *models.Reply) error { return nil },
		getByIDFn:    func(_ context.Context, _ uint) (*models.Reply, error) { return nil, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Reply, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

// assertErrorCode asserts that err is an AppError with the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
