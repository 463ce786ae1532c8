package handlers

import (
	"net/http"

	"github.com/Ajayrajc1998/wedding/internal/services"
	"github.com/Ajayrajc1998/wedding/internal/ws"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
	hub                *ws.Hub
}

func NewParticipantHandler(participantService *services.ParticipantService, hub *ws.Hub) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService, hub: hub}
}

type ParticipantRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100" example:"Ada"`
	LastName    string `json:"last_name" binding:"required,max=100" example:"Lovelace"`
	PhoneNumber string `json:"phone_number" binding:"required,max=32" example:"+15550100"`
	Attending   *bool  `json:"attending" binding:"required" example:"true"`
}

func (r ParticipantRequest) input() services.ParticipantInput {
	return services.ParticipantInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Attending:   *r.Attending,
	}
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Register godoc
// @Summary      Register a participant
// @Description  Register attendance; a second registration with the same first and last name is rejected
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request body ParticipantRequest true "Participant"
// @Success      200 {object} Participant
// @Failure      400 {object} ErrorResponse
// @Router       /participation [post]
func (h *ParticipantHandler) Register(c *gin.Context) {
	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.participantService.Register(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(ws.WSMessage{Type: ws.EventParticipantRegistered, Data: p})
	c.JSON(http.StatusOK, p)
}

// ListParticipants godoc
// @Summary      List participants
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Participant
// @Failure      401 {object} ErrorResponse
// @Router       /participants [get]
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	participants, err := h.participantService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// GetParticipant godoc
// @Summary      Get a participant
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Success      200 {object} Participant
// @Failure      404 {object} ErrorResponse
// @Router       /participant/{id} [get]
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	id, ok := parseID(c, "participant")
	if !ok {
		return
	}

	p, err := h.participantService.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateParticipant godoc
// @Summary      Update a participant
// @Description  Overwrites every field
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Param        request body ParticipantRequest true "Participant"
// @Success      200 {object} Participant
// @Failure      404 {object} ErrorResponse
// @Router       /participant/{id} [put]
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, ok := parseID(c, "participant")
	if !ok {
		return
	}

	var req ParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.participantService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteParticipant godoc
// @Summary      Delete a participant
// @Description  Idempotent: deleting an unknown id returns deleted=false
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Participant ID"
// @Success      200 {object} DeleteResponse
// @Router       /participant/{id} [delete]
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	id, ok := parseID(c, "participant")
	if !ok {
		return
	}

	deleted, err := h.participantService.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}
