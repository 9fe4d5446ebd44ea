// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"cityfeed/internal/models"
	"cityfeed/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Cities every generated user and post is scoped to. A small pool keeps the
// per-city feeds dense enough to be useful in development.
var cities = []string{
	"Austin", "Denver", "Portland", "Chicago", "Seattle",
	"Nashville", "Minneapolis", "Atlanta",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Bio:       gofakeit.Sentence(10),
		City:      cities[f.rng.Intn(len(cities))],
		IsActive:  true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode.
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost creates a post for the given user of a specific post type
// (recommend, help, update, event). The post inherits the author's city
// unless an override sets one.
func (f *Factory) CreatePost(user *models.User, postType string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, postType, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// BuildPost constructs a post struct like CreatePost but does not persist it.
// Useful for batching.
func (f *Factory) BuildPost(user *models.User, postType string, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content:  f.postContent(postType),
		PostType: postType,
		UserID:   user.ID,
		City:     user.City,
		IsActive: true,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	// Roughly a quarter of posts carry an image.
	if f.rng.Intn(4) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateReply constructs and persists a sample reply on the provided post
// authored by the provided user.
func (f *Factory) CreateReply(user *models.User, post *models.Post, overrides ...func(*models.Reply)) (*models.Reply, error) {
	reply := &models.Reply{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(reply)
	}

	if err := f.db.Create(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

// CreateReaction persists a like or dislike from `user` on `post`.
func (f *Factory) CreateReaction(user *models.User, post *models.Post, dislike bool) error {
	reaction := &models.Reaction{
		UserID:    user.ID,
		PostID:    post.ID,
		IsDislike: dislike,
	}
	return f.db.Create(reaction).Error
}

// postContent generates plausible content for a post of the given type,
// trimmed to the content limit.
func (f *Factory) postContent(postType string) string {
	var content string
	switch postType {
	case models.PostTypeRecommend:
		content = fmt.Sprintf("Try %s on %s. %s", gofakeit.Company(),
			gofakeit.Street(), gofakeit.Sentence(6))
	case models.PostTypeHelp:
		content = fmt.Sprintf("Anyone know a good %s around %s?",
			gofakeit.JobTitle(), gofakeit.Street())
	case models.PostTypeEvent:
		content = fmt.Sprintf("%s this %s at %s. %s", gofakeit.HackerNoun(),
			gofakeit.WeekDay(), gofakeit.Company(), gofakeit.Sentence(5))
	default:
		content = gofakeit.Sentence(12)
	}
	if len(content) > validation.MaxContentLength {
		content = content[:validation.MaxContentLength]
	}
	return content
}
