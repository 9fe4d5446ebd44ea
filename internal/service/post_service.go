// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cityfeed/internal/middleware"
	"cityfeed/internal/models"
	"cityfeed/internal/observability"
	"cityfeed/internal/repository"
	"cityfeed/internal/validation"

	"gorm.io/gorm"
)

// PostService enforces the mutation contract for posts: creation with the
// author post-count side effect, like/dislike toggles, and the reply sequence.
type PostService struct {
	postRepo  repository.PostRepository
	replyRepo repository.ReplyRepository
	userRepo  repository.UserRepository
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	PostType string
	ImageURL string
	City     string
}

type AddReplyInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type RemoveReplyInput struct {
	UserID  uint
	ReplyID uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	replyRepo repository.ReplyRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		replyRepo: replyRepo,
		userRepo:  userRepo,
	}
}

// CreatePost validates and persists a new post, then increments the author's
// posts counter. The two writes are separate; a failure between them leaves a
// counter gap that is tolerated rather than rolled back.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if !models.ValidPostType(in.PostType) {
		return nil, models.NewValidationError("Invalid post_type")
	}

	content, err := validation.ValidateContent(in.Content)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if in.ImageURL != "" {
		if err := validation.ValidateImageURL(in.ImageURL); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !author.IsActive {
		return nil, models.NewForbiddenError("Account is deactivated")
	}

	city := strings.TrimSpace(in.City)
	if city == "" {
		city = author.City
	}

	post := &models.Post{
		Content:  content,
		PostType: in.PostType,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
		City:     city,
		IsActive: true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.userRepo.IncrementPostsCount(ctx, in.UserID, 1); err != nil {
		// Accepted consistency gap: the post exists, the counter lags.
		middleware.Logger.WarnContext(ctx, "posts_count increment failed after create",
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()),
		)
	}

	observability.PostsCreatedTotal.WithLabelValues(in.PostType).Inc()
	return s.getPost(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.getPost(ctx, id, currentUserID)
}

func (s *PostService) getPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// activePost fetches a post and rejects inactive ones. Engagement mutations
// treat a deactivated post the same as a missing one.
func (s *PostService) activePost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.getPost(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !post.IsActive {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// ToggleLike flips the caller's like on the post. A standing dislike is
// replaced rather than kept alongside. Returns the refreshed post and whether
// the caller now likes it.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, bool, error) {
	if _, err := s.activePost(ctx, postID, userID); err != nil {
		return nil, false, err
	}

	reaction, err := s.postRepo.GetReaction(ctx, userID, postID)
	if err != nil {
		return nil, false, models.NewInternalError(err)
	}

	liked := false
	if reaction != nil && !reaction.IsDislike {
		if err := s.postRepo.ClearReaction(ctx, userID, postID); err != nil {
			return nil, false, models.NewInternalError(err)
		}
	} else {
		if err := s.postRepo.SetReaction(ctx, userID, postID, false); err != nil {
			return nil, false, models.NewInternalError(err)
		}
		liked = true
	}

	observability.ReactionTogglesTotal.WithLabelValues("like", toggleState(liked)).Inc()

	post, err := s.getPost(ctx, postID, userID)
	if err != nil {
		return nil, false, err
	}
	return post, liked, nil
}

// ToggleDislike is symmetric to ToggleLike with the sets reversed.
func (s *PostService) ToggleDislike(ctx context.Context, userID, postID uint) (*models.Post, bool, error) {
	if _, err := s.activePost(ctx, postID, userID); err != nil {
		return nil, false, err
	}

	reaction, err := s.postRepo.GetReaction(ctx, userID, postID)
	if err != nil {
		return nil, false, models.NewInternalError(err)
	}

	disliked := false
	if reaction != nil && reaction.IsDislike {
		if err := s.postRepo.ClearReaction(ctx, userID, postID); err != nil {
			return nil, false, models.NewInternalError(err)
		}
	} else {
		if err := s.postRepo.SetReaction(ctx, userID, postID, true); err != nil {
			return nil, false, models.NewInternalError(err)
		}
		disliked = true
	}

	observability.ReactionTogglesTotal.WithLabelValues("dislike", toggleState(disliked)).Inc()

	post, err := s.getPost(ctx, postID, userID)
	if err != nil {
		return nil, false, err
	}
	return post, disliked, nil
}

func toggleState(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// AddReply appends a reply to the post's reply sequence.
func (s *PostService) AddReply(ctx context.Context, in AddReplyInput) (*models.Reply, error) {
	content, err := validation.ValidateContent(in.Content)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.activePost(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	reply := &models.Reply{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, models.NewInternalError(err)
	}
	return reply, nil
}

// RemoveReply deletes the caller's reply. Removing a reply that no longer
// exists is a no-op, not an error. Removing someone else's reply is forbidden.
func (s *PostService) RemoveReply(ctx context.Context, in RemoveReplyInput) error {
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if reply == nil {
		return nil
	}
	if reply.UserID != in.UserID {
		return models.NewForbiddenError("You can only remove your own replies")
	}
	if err := s.replyRepo.Delete(ctx, in.ReplyID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeletePost soft-removes the caller's post and decrements the author's
// posts counter to compensate.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.getPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if !post.IsActive {
		return nil
	}

	if err := s.postRepo.SoftDelete(ctx, in.PostID); err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.IncrementPostsCount(ctx, in.UserID, -1)
}

// GetUserPosts lists a user's active posts for their profile page.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
