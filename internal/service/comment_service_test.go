package service

import (
	"context"
	"errors"
	"testing"

	"commentary/internal/models"
	"commentary/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	listFn    func(context.Context) ([]*models.Comment, error)
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	createFn  func(context.Context, *models.Comment) error
	updateFn  func(context.Context, *models.Comment) error
	deleteFn  func(context.Context, uint) error
}

func (s *commentRepoStub) List(ctx context.Context) ([]*models.Comment, error) {
	return s.listFn(ctx)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		listFn:    func(_ context.Context) ([]*models.Comment, error) { return []*models.Comment{}, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id, Body: "old", UserID: 1}, nil },
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

func missingCommentRepo() *commentRepoStub {
	repo := noopCommentRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
		return nil, models.NewNotFoundError("Comment")
	}
	return repo
}

// MockPublisher is a mock of the EventPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCommentEvent(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

func assertValidationMessages(t *testing.T, err error, expected ...string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, expected, appErr.Errors)
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.listFn = func(_ context.Context) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 1}, {ID: 2}}, nil
	}
	comments, err := NewCommentService(repo, nil).ListComments(context.Background())
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	storeErr := models.NewInternalError(errors.New("db down"))
	repo.listFn = func(_ context.Context) ([]*models.Comment, error) { return nil, storeErr }
	_, err = NewCommentService(repo, nil).ListComments(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestCommentService_GetComment(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		comment, err := NewCommentService(noopCommentRepo(), nil).GetComment(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, uint(3), comment.ID)
	})

	t.Run("missing yields nil without error", func(t *testing.T) {
		t.Parallel()
		comment, err := NewCommentService(missingCommentRepo(), nil).GetComment(context.Background(), 3)
		assert.NoError(t, err)
		assert.Nil(t, comment)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		storeErr := models.NewInternalError(errors.New("timeout"))
		repo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return nil, storeErr }
		_, err := NewCommentService(repo, nil).GetComment(context.Background(), 3)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.createFn = func(_ context.Context, _ *models.Comment) error {
		t.Error("store must not be touched when validation fails")
		return nil
	}
	svc := NewCommentService(repo, nil)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{})
	assertValidationMessages(t, err, validation.MsgBodyRequired, validation.MsgUserIDRequired)

	_, err = svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1})
	assertValidationMessages(t, err, validation.MsgBodyRequired)
}

func TestCommentService_CreateComment_Success(t *testing.T) {
	t.Parallel()

	repo := noopCommentRepo()
	repo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 42
		return nil
	}
	pub := new(MockPublisher)
	pub.On("PublishCommentEvent", mock.Anything, EventCommentCreated, mock.AnythingOfType("*models.Comment")).Return(nil)

	comment, err := NewCommentService(repo, pub).CreateComment(context.Background(), CreateCommentInput{
		Body:   "hello",
		UserID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), comment.ID)
	assert.Equal(t, "hello", comment.Body)
	assert.Equal(t, uint(1), comment.UserID)
	pub.AssertExpectations(t)
}

func TestCommentService_CreateComment_PublishFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()

	pub := new(MockPublisher)
	pub.On("PublishCommentEvent", mock.Anything, EventCommentCreated, mock.Anything).Return(errors.New("redis down"))

	comment, err := NewCommentService(noopCommentRepo(), pub).CreateComment(context.Background(), CreateCommentInput{
		Body:   "hello",
		UserID: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, comment)
	pub.AssertExpectations(t)
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("missing comment is reported before validation", func(t *testing.T) {
		t.Parallel()
		err := NewCommentService(missingCommentRepo(), nil).UpdateComment(context.Background(), UpdateCommentInput{CommentID: 9})
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
		assert.Equal(t, "Comment not found", err.Error())
	})

	t.Run("invalid input leaves record untouched", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.updateFn = func(_ context.Context, _ *models.Comment) error {
			t.Error("update must not run for invalid input")
			return nil
		}
		err := NewCommentService(repo, nil).UpdateComment(context.Background(), UpdateCommentInput{CommentID: 1, UserID: 1})
		assertValidationMessages(t, err, validation.MsgBodyRequired)
	})

	t.Run("overwrites fields and publishes", func(t *testing.T) {
		t.Parallel()
		var saved *models.Comment
		repo := noopCommentRepo()
		repo.updateFn = func(_ context.Context, c *models.Comment) error {
			saved = c
			return nil
		}
		pub := new(MockPublisher)
		pub.On("PublishCommentEvent", mock.Anything, EventCommentUpdated, mock.Anything).Return(nil)

		err := NewCommentService(repo, pub).UpdateComment(context.Background(), UpdateCommentInput{
			CommentID: 5,
			Body:      "edited",
			UserID:    2,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, uint(5), saved.ID)
		assert.Equal(t, "edited", saved.Body)
		assert.Equal(t, uint(2), saved.UserID)
		pub.AssertExpectations(t)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	t.Parallel()

	t.Run("missing comment", func(t *testing.T) {
		t.Parallel()
		repo := missingCommentRepo()
		repo.deleteFn = func(_ context.Context, _ uint) error {
			t.Error("delete must not run for a missing comment")
			return nil
		}
		err := NewCommentService(repo, nil).DeleteComment(context.Background(), 4)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("deletes and publishes", func(t *testing.T) {
		t.Parallel()
		var deleted uint
		repo := noopCommentRepo()
		repo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		pub := new(MockPublisher)
		pub.On("PublishCommentEvent", mock.Anything, EventCommentDeleted, map[string]interface{}{"id": uint(4)}).Return(nil)

		require.NoError(t, NewCommentService(repo, pub).DeleteComment(context.Background(), 4))
		assert.Equal(t, uint(4), deleted)
		pub.AssertExpectations(t)
	})

	t.Run("store failure skips publication", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		storeErr := models.NewInternalError(errors.New("locked"))
		repo.deleteFn = func(_ context.Context, _ uint) error { return storeErr }
		pub := new(MockPublisher)

		err := NewCommentService(repo, pub).DeleteComment(context.Background(), 4)
		assert.ErrorIs(t, err, storeErr)
		pub.AssertNotCalled(t, "PublishCommentEvent", mock.Anything, mock.Anything, mock.Anything)
	})
}
