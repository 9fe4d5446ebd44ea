// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"
	"time"

	"cityfeed/internal/cache"
	"cityfeed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a feed query. All fields are optional; zero values mean
// "no constraint". City is matched verbatim (trimmed) against the stored
// value; Search matches post content case-insensitively. Limit <= 0 returns
// the full filtered set.
type PostFilter struct {
	City     string
	PostType string
	AuthorID uint
	Search   string
	SortBy   string
	Limit    int
	Offset   int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Query(ctx context.Context, filter PostFilter, currentUserID uint) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id uint) error
	GetReaction(ctx context.Context, userID, postID uint) (*models.Reaction, error)
	SetReaction(ctx context.Context, userID, postID uint, isDislike bool) error
	ClearReaction(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	var err error
	if currentUserID == 0 {
		// Anonymous reads have no per-user fields, safe to cache.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return r.applyPostDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				Preload("Replies", func(db *gorm.DB) *gorm.DB {
					return db.Order("created_at ASC")
				}).
				Preload("Replies.User").
				First(&post, id).Error
		})
	} else {
		err = r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Preload("Replies", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Replies.User").
			First(&post, id).Error
	}

	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Query returns a page of active posts matching the filter plus the total
// match count used for pagination.
func (r *postRepository) Query(ctx context.Context, filter PostFilter, currentUserID uint) ([]*models.Post, int64, error) {
	applyFilter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("posts.is_active = ?", true)
		if city := strings.TrimSpace(filter.City); city != "" {
			db = db.Where("posts.city = ?", city)
		}
		if filter.PostType != "" {
			db = db.Where("posts.post_type = ?", filter.PostType)
		}
		if filter.AuthorID != 0 {
			db = db.Where("posts.user_id = ?", filter.AuthorID)
		}
		if filter.Search != "" {
			db = db.Where("LOWER(posts.content) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
		}
		return db
	}

	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Post{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	base := applyFilter(r.applyPostDetails(r.db.WithContext(ctx), currentUserID)).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User")
	base = r.applySort(base, filter.SortBy)
	if filter.Limit > 0 {
		base = base.Limit(filter.Limit).Offset(filter.Offset)
	}

	var posts []*models.Post
	if err := base.Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// likes_count is a SELECT alias from applyPostDetails; both PostgreSQL and
// SQLite allow referencing it in ORDER BY within the same query level.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "mostLiked":
		return db.Order("likes_count DESC, posts.created_at DESC")
	case "oldest":
		return db.Order("posts.created_at ASC")
	default: // "newest" and anything unrecognized
		return db.Order("posts.created_at DESC")
	}
}

// applyPostDetails adds subqueries to fetch counts and reaction status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.is_dislike = ?) as likes_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.is_dislike = ?) as dislikes_count, " +
		"(SELECT COUNT(*) FROM replies WHERE replies.post_id = posts.id) as replies_count"
	args := []interface{}{false, true}

	if currentUserID != 0 {
		selectQuery += ", EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.is_dislike = ?) as liked" +
			", EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.is_dislike = ?) as disliked"
		args = append(args, currentUserID, false, currentUserID, true)
		return db.Select(selectQuery, args...)
	}

	selectQuery += ", false as liked, false as disliked"
	return db.Select(selectQuery, args...)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	return nil
}

// SoftDelete deactivates a post. The row stays for audit; feeds and
// engagement operations treat it as gone.
func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("is_active", false).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

func (r *postRepository) GetReaction(ctx context.Context, userID, postID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// SetReaction upserts the (user, post) reaction row. The unique index on
// (user_id, post_id) makes the flip between like and dislike a single
// in-place update, so a user can never hold both at once.
func (r *postRepository) SetReaction(ctx context.Context, userID, postID uint, isDislike bool) error {
	now := time.Now()
	reaction := models.Reaction{
		UserID:    userID,
		PostID:    postID,
		IsDislike: isDislike,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_dislike": isDislike,
			"updated_at": now,
		}),
	}).Create(&reaction).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return err
}

func (r *postRepository) ClearReaction(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Reaction{}).Error
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return err
}
