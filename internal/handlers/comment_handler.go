package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsphere/backend/internal/helpers"
	"github.com/eventsphere/backend/internal/middleware"
	"github.com/eventsphere/backend/internal/services"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type CreateCommentRequest struct {
	EventID         uint   `json:"event_id" binding:"required"`
	Text            string `json:"text" binding:"required,min=1,max=1000"`
	ParentCommentID *uint  `json:"parent_comment_id" binding:"omitempty,gt=0"`
}

type CreateCommentAsAuthorRequest struct {
	EventID         uint   `json:"event_id" binding:"required"`
	AuthorID        uint   `json:"author_id" binding:"required"`
	Text            string `json:"text" binding:"required,min=1,max=1000"`
	ParentCommentID *uint  `json:"parent_comment_id" binding:"omitempty,gt=0"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), services.CommentCreate{
		EventID:         req.EventID,
		AuthorID:        p.ID,
		Text:            req.Text,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) CreateAsAuthor(c *gin.Context) {
	var req CreateCommentAsAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), services.CommentCreate{
		EventID:         req.EventID,
		AuthorID:        req.AuthorID,
		Text:            req.Text,
		ParentCommentID: req.ParentCommentID,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) Get(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid comment ID.")
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) ListForEvent(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	skip, limit, err := helpers.Pagination(c, 20)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	comments, total, err := h.comments.ListForEvent(c.Request.Context(), eventID, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": comments,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *CommentHandler) ListForUser(c *gin.Context) {
	userID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	skip, limit, err := helpers.Pagination(c, 20)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	comments, total, err := h.comments.ListForUser(c.Request.Context(), userID, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": comments,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid comment ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), p, id, req.Text)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid comment ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := h.comments.Delete(c.Request.Context(), p, id); err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully."})
}
