package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/service"
)

// TrainerHandler serves the coaching surface: the assigned-client roster,
// read-only access to client weight logs and exercise plan management.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- DTOs ---

type CreatePlanRequest struct {
	Name      string                 `json:"name" binding:"required,min=1,max=128"`
	Exercises []domain.ExerciseEntry `json:"exercises" binding:"required,min=1,dive"`
}

type AssignPlanRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

// --- Handlers ---

// ListClients returns the accounts currently assigned to the caller.
func (h *TrainerHandler) ListClients(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	clients, err := h.trainerService.ListAssignedUsers(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountsToResponse(clients))
}

// GetClientWeights returns the weight log of one assigned client.
func (h *TrainerHandler) GetClientWeights(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	entries, err := h.trainerService.GetAssignedUserWeights(c.Request.Context(), claim, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *TrainerHandler) CreatePlan(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	plan, err := h.trainerService.CreatePlan(c.Request.Context(), claim, req.Name, req.Exercises)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListPlans returns the caller's own plans, or every plan for admins.
func (h *TrainerHandler) ListPlans(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	plans, err := h.trainerService.ListPlans(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *TrainerHandler) DeletePlan(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	if err := h.trainerService.DeletePlan(c.Request.Context(), claim, c.Param("planId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrainerHandler) AssignPlan(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req AssignPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.trainerService.AssignPlan(c.Request.Context(), claim, c.Param("planId"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *TrainerHandler) UnassignPlan(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	// Unassigning a plan that is not assigned is a no-op, not an error.
	if _, err := h.trainerService.UnassignPlan(c.Request.Context(), claim, c.Param("planId"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
