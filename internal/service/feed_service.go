package service

import (
	"context"
	"strings"

	"cityfeed/internal/models"
	"cityfeed/internal/observability"
	"cityfeed/internal/repository"

	"github.com/samber/lo"
)

// Feed sort orders.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortMostLiked = "mostLiked"
)

var feedSortOrders = []string{SortNewest, SortOldest, SortMostLiked}

// ValidSortBy reports whether s is a recognized feed sort order.
func ValidSortBy(s string) bool {
	return lo.Contains(feedSortOrders, s)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FeedService builds filtered, sorted, paginated views over active posts.
type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// FeedFilter narrows a feed view. All fields are optional; Page and PageSize
// both zero means the full filtered set is returned unpaginated.
type FeedFilter struct {
	PostType string
	AuthorID uint
	City     string
	SortBy   string
	Search   string
	Page     int
	PageSize int
}

// FeedPage is one page of feed results with pagination bookkeeping.
type FeedPage struct {
	Posts      []*models.Post `json:"posts"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
	HasNext    bool           `json:"has_next"`
	HasPrev    bool           `json:"has_prev"`
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{postRepo: postRepo, userRepo: userRepo}
}

// QueryFeed returns active posts matching the filter. Absent optional filters
// mean "no constraint"; postType and sortBy are validated because their
// enumerations are closed.
func (s *FeedService) QueryFeed(ctx context.Context, filter FeedFilter, currentUserID uint) (*FeedPage, error) {
	if filter.PostType != "" && !models.ValidPostType(filter.PostType) {
		return nil, models.NewValidationError("Invalid post_type filter")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = SortNewest
	}
	if !ValidSortBy(sortBy) {
		return nil, models.NewValidationError("Invalid sortBy value")
	}

	// No page and no limit means no pagination: the whole filtered, sorted
	// set comes back in one response.
	paginated := filter.Page > 0 || filter.PageSize > 0

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	limit, offset := pageSize, (page-1)*pageSize
	if !paginated {
		limit, offset = 0, 0
	}

	posts, total, err := s.postRepo.Query(ctx, repository.PostFilter{
		City:     strings.TrimSpace(filter.City),
		PostType: filter.PostType,
		AuthorID: filter.AuthorID,
		Search:   strings.TrimSpace(filter.Search),
		SortBy:   sortBy,
		Limit:    limit,
		Offset:   offset,
	}, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.FeedQueriesTotal.WithLabelValues(sortBy).Inc()

	if !paginated {
		totalPages := 0
		if total > 0 {
			totalPages = 1
		}
		return &FeedPage{
			Posts:      posts,
			Total:      total,
			Page:       1,
			PageSize:   len(posts),
			TotalPages: totalPages,
		}, nil
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &FeedPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// HomeFeed scopes the feed to the caller's stored city unless the filter
// already names one.
func (s *FeedService) HomeFeed(ctx context.Context, userID uint, filter FeedFilter) (*FeedPage, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewForbiddenError("Account is deactivated")
	}

	if strings.TrimSpace(filter.City) == "" {
		filter.City = user.City
	}
	return s.QueryFeed(ctx, filter, userID)
}
