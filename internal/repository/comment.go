// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"commentary/internal/models"
	"commentary/internal/observability"

	"gorm.io/gorm"
)

const commentsTable = "comments"

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	List(ctx context.Context) ([]*models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{
		db:  db,
		log: observability.NewRepoLogger(commentsTable, nil),
	}
}

func (r *commentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	defer observability.TrackQuery("list", commentsTable)()

	comments := make([]*models.Comment, 0)
	if err := r.db.WithContext(ctx).Preload("User").Order("id asc").Find(&comments).Error; err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, models.NewInternalError(err)
	}
	r.log.LogRead(ctx, map[string]interface{}{"count": len(comments)})
	return comments, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	defer observability.TrackQuery("get", commentsTable)()

	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment")
		}
		r.log.LogError(ctx, err, "get")
		return nil, models.NewInternalError(err)
	}
	r.log.LogRead(ctx, map[string]interface{}{"id": id})
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", commentsTable)()

	if err := r.db.WithContext(ctx).Omit("User").Create(comment).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": comment.ID, "user_id": comment.UserID})
	return nil
}

// Update overwrites body and user_id of an existing comment. Zero values are
// written as given.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("update", commentsTable)()

	err := r.db.WithContext(ctx).
		Model(&models.Comment{ID: comment.ID}).
		Updates(map[string]interface{}{
			"body":    comment.Body,
			"user_id": comment.UserID,
		}).Error
	if err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": comment.ID})
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", commentsTable)()

	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}
