package server

import (
	"commentary/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) commentRoutes() []route {
	return []route{
		{fiber.MethodGet, "/", s.ListComments},
		{fiber.MethodGet, "/:id", withID(s.GetComment)},
		{fiber.MethodPost, "/", s.CreateComment},
		{fiber.MethodPut, "/:id", withID(s.UpdateComment)},
		{fiber.MethodDelete, "/:id", withID(s.DeleteComment)},
	}
}

// ListComments handles GET /comments
// @Summary List comments
// @Description Returns every comment with its author
// @Tags comments
// @Produce json
// @Success 200 {array} models.Comment
// @Failure 500 {object} models.ErrorResponse
// @Router /comments [get]
func (s *Server) ListComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(comments)
}

// GetComment handles GET /comments/:id
// @Summary Get a comment
// @Description Returns the comment with its author, or null when no comment has the id
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ValidationResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /comments/{id} [get]
func (s *Server) GetComment(c *fiber.Ctx, id uint) error {
	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return err
	}
	if comment == nil {
		return c.JSON(nil)
	}
	return c.JSON(comment)
}

// CreateComment handles POST /comments
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body object{body=string,userId=int} true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ValidationResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	body, userID, err := parseCommentRequest(c)
	if err != nil {
		return err
	}

	created, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		Body:   body,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment handles PUT /comments/:id
// @Summary Replace a comment's body and author
// @Tags comments
// @Accept json
// @Param id path int true "Comment ID"
// @Param request body object{body=string,userId=int} true "Comment"
// @Success 204 "No Content"
// @Failure 400 {object} models.ValidationResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx, id uint) error {
	body, userID, err := parseCommentRequest(c)
	if err != nil {
		return err
	}

	err = s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		CommentID: id,
		Body:      body,
		UserID:    userID,
	})
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteComment handles DELETE /comments/:id
// @Summary Delete a comment
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx, id uint) error {
	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
