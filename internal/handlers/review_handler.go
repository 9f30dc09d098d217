package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsphere/backend/internal/helpers"
	"github.com/eventsphere/backend/internal/middleware"
	"github.com/eventsphere/backend/internal/services"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type CreateReviewRequest struct {
	EventID uint   `json:"event_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

type CreateReviewAsAuthorRequest struct {
	EventID  uint   `json:"event_id" binding:"required"`
	AuthorID uint   `json:"author_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"max=1000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=1000"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), services.ReviewCreate{
		EventID:  req.EventID,
		AuthorID: p.ID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) CreateAsAuthor(c *gin.Context) {
	var req CreateReviewAsAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), services.ReviewCreate{
		EventID:  req.EventID,
		AuthorID: req.AuthorID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid review ID.")
		return
	}

	review, err := h.reviews.GetByID(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ListForEvent(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	skip, limit, err := helpers.Pagination(c, 100)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	var minRating, maxRating *int
	if v := c.Query("rating_min"); v != "" {
		n, err := helpers.StringToInt(v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid rating filter.")
			return
		}
		minRating = &n
	}
	if v := c.Query("rating_max"); v != "" {
		n, err := helpers.StringToInt(v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid rating filter.")
			return
		}
		maxRating = &n
	}

	reviews, total, err := h.reviews.ListForEvent(c.Request.Context(), eventID, minRating, maxRating, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": reviews,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *ReviewHandler) ListForUser(c *gin.Context) {
	userID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid user ID.")
		return
	}

	skip, limit, err := helpers.Pagination(c, 100)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	reviews, total, err := h.reviews.ListForUser(c.Request.Context(), userID, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": reviews,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid review ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), p, id, services.ReviewUpdate{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid review ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), p, id); err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully."})
}
