// Package seed creates demo users and comments for development databases.
package seed

import (
	"context"
	"fmt"

	"commentary/internal/models"
	"commentary/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds users and comments with fake content and persists them
// through the repositories.
type Factory struct {
	db       *gorm.DB
	users    repository.UserRepository
	comments repository.CommentRepository
	faker    *gofakeit.Faker
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{
		db:       db,
		users:    repository.NewUserRepository(db),
		comments: repository.NewCommentRepository(db),
		faker:    gofakeit.New(seed),
	}
}

// CreateUser persists a user with a unique fake username and email.
func (f *Factory) CreateUser(ctx context.Context) (*models.User, error) {
	suffix := f.faker.Number(100000, 999999)
	user := &models.User{
		Username: fmt.Sprintf("%s%d", f.faker.Username(), suffix),
		Email:    fmt.Sprintf("%d.%s", suffix, f.faker.Email()),
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateComment persists a comment by user with a fake body.
func (f *Factory) CreateComment(ctx context.Context, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		Body:   f.faker.Sentence(f.faker.Number(4, 20)),
		UserID: user.ID,
	}
	if err := f.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Result summarizes a seeding run.
type Result struct {
	Users    int
	Comments int
}

// Seed creates numUsers users with commentsPerUser comments each.
func (f *Factory) Seed(ctx context.Context, numUsers, commentsPerUser int) (Result, error) {
	var res Result
	for i := 0; i < numUsers; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return res, fmt.Errorf("create user: %w", err)
		}
		res.Users++

		for j := 0; j < commentsPerUser; j++ {
			if _, err := f.CreateComment(ctx, user); err != nil {
				return res, fmt.Errorf("create comment for user %d: %w", user.ID, err)
			}
			res.Comments++
		}
	}
	return res, nil
}

// SeedComments adds count comments to the existing user with userID.
func (f *Factory) SeedComments(ctx context.Context, userID uint, count int) (Result, error) {
	var res Result
	user, err := f.users.GetByID(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("load user %d: %w", userID, err)
	}

	for i := 0; i < count; i++ {
		if _, err := f.CreateComment(ctx, user); err != nil {
			return res, fmt.Errorf("create comment for user %d: %w", user.ID, err)
		}
		res.Comments++
	}
	return res, nil
}

// ClearAll removes every comment and user.
func (f *Factory) ClearAll(ctx context.Context) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("clear comments: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}
