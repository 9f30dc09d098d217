package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsphere/backend/internal/helpers"
	"github.com/eventsphere/backend/internal/middleware"
	"github.com/eventsphere/backend/internal/models"
	"github.com/eventsphere/backend/internal/services"
)

type ParticipationHandler struct {
	participations *services.ParticipationService
}

func NewParticipationHandler(participations *services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participations: participations}
}

type SetParticipationRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=going interested not_going"`
}

func (h *ParticipationHandler) SetStatus(c *gin.Context) {
	eventID, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	var req SetParticipationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
	}

	status := models.StatusInterested
	if req.Status != "" {
		status = models.ParticipationStatus(req.Status)
	}

	participation, err := h.participations.SetStatus(c.Request.Context(), p.ID, eventID, status)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participation)
}

func (h *ParticipationHandler) ListForEvent(c *gin.Context) {
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

	var status *models.ParticipationStatus
	if v := c.Query("status"); v != "" {
		s := models.ParticipationStatus(v)
		if !s.Valid() {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status filter.")
			return
		}
		status = &s
	}

	participations, total, err := h.participations.ListForEvent(c.Request.Context(), eventID, status, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": participations,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *ParticipationHandler) ListMine(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	skip, limit, err := helpers.Pagination(c, 100)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters.")
		return
	}

	participations, total, err := h.participations.ListForUser(c.Request.Context(), p.ID, skip, limit)
	if err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": participations,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func (h *ParticipationHandler) Delete(c *gin.Context) {
	id, err := helpers.UintParam(c, "id")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid participation ID.")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := h.participations.Delete(c.Request.Context(), p, id); err != nil {
		helpers.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participation removed successfully."})
}
