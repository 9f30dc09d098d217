package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventsphere/backend/internal/helpers"
	"github.com/eventsphere/backend/internal/middleware"
	"github.com/eventsphere/backend/internal/services"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=255"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	CategoryID  uint      `json:"category_id" binding:"required"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=2,max=255"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	CategoryID  *uint      `json:"category_id" binding:"omitempty,gt=0"`
}

func (h *EventHandler) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	event, err := h.events.Create(c.Request.Context(), p, services.EventCreate{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	event, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) List(c *gin.Context) {
	skip, limit, err := helpers.Pagination(c, 100)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	var filter services.EventFilter
	if v := c.Query("category_id"); v != "" {
		id, err := helpers.StringToUint(v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid category filter.")
			return
		}
		filter.CategoryID = &id
	}
	if v := c.Query("author_id"); v != "" {
		id, err := helpers.StringToUint(v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid author filter.")
			return
		}
		filter.AuthorID = &id
	}
	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date_from format. Use RFC 3339.")
			return
		}
		filter.DateFrom = &t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date_to format. Use RFC 3339.")
			return
		}
		filter.DateTo = &t
	}

	events, total, err := h.events.List(c.Request.Context(), filter, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": events,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *EventHandler) Update(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	event, err := h.events.Update(c.Request.Context(), p, id, services.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.EventDate,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := h.events.Delete(c.Request.Context(), p, id); err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully."})
}
