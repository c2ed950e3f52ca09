// Package service holds the business logic between handlers and repositories.
package service

import (
	"context"
	"log/slog"

	"commentary/internal/middleware"
	"commentary/internal/models"
	"commentary/internal/observability"
	"commentary/internal/repository"
	"commentary/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// Comment lifecycle event types.
const (
	EventCommentCreated = "comment_created"
	EventCommentUpdated = "comment_updated"
	EventCommentDeleted = "comment_deleted"
)

// EventPublisher fans comment lifecycle events out to subscribers.
type EventPublisher interface {
	PublishCommentEvent(ctx context.Context, eventType string, payload interface{}) error
}

type CommentService struct {
	commentRepo repository.CommentRepository
	events      EventPublisher
}

type CreateCommentInput struct {
	Body   string
	UserID uint
}

type UpdateCommentInput struct {
	CommentID uint
	Body      string
	UserID    uint
}

// NewCommentService wires the service. events may be nil, in which case no
// lifecycle events are published.
func NewCommentService(commentRepo repository.CommentRepository, events EventPublisher) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		events:      events,
	}
}

func (s *CommentService) ListComments(ctx context.Context) (comments []*models.Comment, err error) {
	ctx, finish := observability.StartSpan(ctx, "comments.list")
	defer func() { finish(err) }()

	return s.commentRepo.List(ctx)
}

// GetComment returns nil without an error when no comment has the given id.
func (s *CommentService) GetComment(ctx context.Context, id uint) (comment *models.Comment, err error) {
	ctx, finish := observability.StartSpan(ctx, "comments.get", attribute.Int64("comment.id", int64(id)))
	defer func() { finish(err) }()

	comment, err = s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (_ *models.Comment, err error) {
	ctx, finish := observability.StartSpan(ctx, "comments.create")
	defer func() { finish(err) }()

	if err := validation.CommentFields(in.Body, in.UserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:   in.Body,
		UserID: in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publish(ctx, EventCommentCreated, comment)
	return comment, nil
}

// UpdateComment overwrites body and user id of an existing comment. A missing
// comment is reported before the input is validated.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (err error) {
	ctx, finish := observability.StartSpan(ctx, "comments.update", attribute.Int64("comment.id", int64(in.CommentID)))
	defer func() { finish(err) }()

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if err := validation.CommentFields(in.Body, in.UserID); err != nil {
		return err
	}

	comment.Body = in.Body
	comment.UserID = in.UserID
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return err
	}

	s.publish(ctx, EventCommentUpdated, map[string]interface{}{
		"id":     comment.ID,
		"body":   comment.Body,
		"userId": comment.UserID,
	})
	return nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) (err error) {
	ctx, finish := observability.StartSpan(ctx, "comments.delete", attribute.Int64("comment.id", int64(id)))
	defer func() { finish(err) }()

	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, EventCommentDeleted, map[string]interface{}{"id": id})
	return nil
}

func (s *CommentService) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishCommentEvent(ctx, eventType, payload); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish comment event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
