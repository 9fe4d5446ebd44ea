package server

import (
	"io"

	"cityfeed/internal/models"
	"cityfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts. The body is multipart with text fields
// {content, postType, city} and an optional single image attachment which is
// forwarded to the remote image host before the post is persisted.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	content := c.FormValue("content")
	postType := c.FormValue("postType")
	city := c.FormValue("city")

	// Pre-hosted images may be passed directly; an attached file wins.
	imageURL := c.FormValue("image_url")
	if file, fileErr := c.FormFile("image"); fileErr == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}

		hosted, err := s.mediaService.Upload(c.Context(), file.Filename,
			file.Header.Get("Content-Type"), data)
		if err != nil {
			return models.RespondWithError(c, err)
		}
		imageURL = hosted
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   userID,
		Content:  content,
		PostType: postType,
		ImageURL: imageURL,
		City:     city,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusCreated, "Post created", post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	currentUserID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPost(c.Context(), id, currentUserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.RespondWithData(c, fiber.StatusOK, "", post)
}

// GetReplies handles GET /api/posts/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Confirm the post exists before listing its replies.
	if _, err := s.postService.GetPost(c.Context(), id, 0); err != nil {
		return models.RespondWithError(c, err)
	}

	replies, listErr := s.replyRepo.ListByPost(c.Context(), id)
	if listErr != nil {
		return models.RespondWithError(c, models.NewInternalError(listErr))
	}
	return models.RespondWithData(c, fiber.StatusOK, "", replies)
}

// ToggleLike handles POST /api/posts/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, liked, toggleErr := s.postService.ToggleLike(c.Context(), userID, id)
	if toggleErr != nil {
		return models.RespondWithError(c, toggleErr)
	}

	message := "unliked"
	if liked {
		message = "liked"
	}
	return models.RespondWithData(c, fiber.StatusOK, message, post)
}

// ToggleDislike handles POST /api/posts/:id/dislike
func (s *Server) ToggleDislike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	post, disliked, toggleErr := s.postService.ToggleDislike(c.Context(), userID, id)
	if toggleErr != nil {
		return models.RespondWithError(c, toggleErr)
	}

	message := "undisliked"
	if disliked {
		message = "disliked"
	}
	return models.RespondWithData(c, fiber.StatusOK, message, post)
}

// AddReply handles POST /api/posts/:id/replies
func (s *Server) AddReply(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	reply, replyErr := s.postService.AddReply(c.Context(), service.AddReplyInput{
		UserID:  userID,
		PostID:  id,
		Content: req.Content,
	})
	if replyErr != nil {
		return models.RespondWithError(c, replyErr)
	}
	return models.RespondWithData(c, fiber.StatusCreated, "Reply added", reply)
}

// RemoveReply handles DELETE /api/posts/:id/replies/:replyId
func (s *Server) RemoveReply(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "id"); err != nil {
		return nil
	}
	replyID, err := s.parseID(c, "replyId")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if removeErr := s.postService.RemoveReply(c.Context(), service.RemoveReplyInput{
		UserID:  userID,
		ReplyID: replyID,
	}); removeErr != nil {
		return models.RespondWithError(c, removeErr)
	}
	return models.RespondWithData(c, fiber.StatusOK, "Reply removed", nil)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	if deleteErr := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: userID,
		PostID: id,
	}); deleteErr != nil {
		return models.RespondWithError(c, deleteErr)
	}
	return models.RespondWithData(c, fiber.StatusOK, "Post deleted", nil)
}
