package seed

import (
	"fmt"
	"log"

	"cityfeed/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	// MaxDays caps how far back generated post timestamps spread.
	MaxDays int
}

var postTypes = []string{
	models.PostTypeRecommend,
	models.PostTypeHelp,
	models.PostTypeUpdate,
	models.PostTypeEvent,
}

// Seed populates the database with demo data: users spread across the city
// pool, posts of all four types, and a layer of reactions and replies so
// sorted feeds have something to rank.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := createPosts(factory, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	if err := createEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("✓ reactions and replies created")

	if err := syncPostsCounts(db); err != nil {
		return fmt.Errorf("failed to sync posts counts: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE replies, reactions, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(factory *Factory, users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[factory.rng.Intn(len(users))]
		postType := postTypes[factory.rng.Intn(len(postTypes))]
		posts = append(posts, factory.BuildPost(author, postType))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// createEngagement scatters reactions and replies over the seeded posts.
// Reactions respect the one-row-per-user-per-post constraint by tracking
// which pairs have already been used.
func createEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	type pair struct{ userID, postID uint }
	seen := make(map[pair]bool)

	for _, post := range posts {
		reactions := factory.rng.Intn(len(users)/2 + 1)
		for i := 0; i < reactions; i++ {
			user := users[factory.rng.Intn(len(users))]
			key := pair{user.ID, post.ID}
			if seen[key] {
				continue
			}
			seen[key] = true
			// Likes dominate; roughly one reaction in five is a dislike.
			dislike := factory.rng.Intn(5) == 0
			if err := factory.CreateReaction(user, post, dislike); err != nil {
				return err
			}
		}

		replies := factory.rng.Intn(4)
		for i := 0; i < replies; i++ {
			user := users[factory.rng.Intn(len(users))]
			if _, err := factory.CreateReply(user, post); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncPostsCounts rebuilds the denormalized users.posts_count from the
// actual post rows so profiles reflect the batch insert.
func syncPostsCounts(db *gorm.DB) error {
	sql := `UPDATE users SET posts_count = (
		SELECT COUNT(*) FROM posts
		WHERE posts.user_id = users.id AND posts.is_active = true
	)`
	return db.Exec(sql).Error
}
