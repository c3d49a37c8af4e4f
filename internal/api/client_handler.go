package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/service"
)

// ClientHandler serves the self-scoped resources: profile, workouts,
// weights, calories, assigned plans, progress photos and the data reset.
type ClientHandler struct {
	clientService service.ClientService
	mediaService  service.MediaService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService, mediaService service.MediaService) *ClientHandler {
	return &ClientHandler{clientService: clientService, mediaService: mediaService}
}

// --- DTOs ---

type UpsertProfileRequest struct {
	Attributes map[string]any `json:"attributes" binding:"required"`
}

type CreateWorkoutRequest struct {
	Date      string                 `json:"date" binding:"required"`
	Exercises []domain.ExerciseEntry `json:"exercises" binding:"required,min=1,dive"`
}

type UpsertWeightRequest struct {
	Date  string   `json:"date" binding:"required"`
	Value float64  `json:"value" binding:"required,gt=0"`
	Goal  *float64 `json:"goal"`
	Note  string   `json:"note"`
}

type CreateCalorieRequest struct {
	Date     string   `json:"date" binding:"required"`
	Meal     string   `json:"meal" binding:"required"`
	Food     string   `json:"food" binding:"required"`
	Calories float64  `json:"calories" binding:"required,gte=0"`
	Protein  float64  `json:"protein" binding:"gte=0"`
	Carbs    float64  `json:"carbs" binding:"gte=0"`
	Fat      float64  `json:"fat" binding:"gte=0"`
	Target   *float64 `json:"target"`
}

type PhotoUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	TakenAt     string `json:"takenAt"`
}

// --- Profile ---

func (h *ClientHandler) GetProfile(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	profile, err := h.clientService.GetProfile(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ClientHandler) UpsertProfile(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.clientService.UpsertProfile(c.Request.Context(), claim, req.Attributes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// --- Workouts ---

func (h *ClientHandler) CreateWorkout(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.clientService.CreateWorkout(c.Request.Context(), claim, req.Date, req.Exercises)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *ClientHandler) ListWorkouts(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	workouts, err := h.clientService.ListWorkouts(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *ClientHandler) DeleteWorkout(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	if err := h.clientService.DeleteWorkout(c.Request.Context(), claim, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Weights ---

func (h *ClientHandler) UpsertWeight(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req UpsertWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.clientService.UpsertWeight(c.Request.Context(), claim, req.Date, req.Value, req.Goal, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ClientHandler) ListWeights(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	entries, err := h.clientService.ListWeights(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// --- Calories ---

func (h *ClientHandler) CreateCalorie(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req CreateCalorieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.clientService.CreateCalorie(c.Request.Context(), claim, domain.CalorieEntry{
		Date:     req.Date,
		Meal:     req.Meal,
		Food:     req.Food,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Target:   req.Target,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ClientHandler) ListCalories(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	entries, err := h.clientService.ListCalories(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ClientHandler) DeleteCalorie(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid calorie entry id")
		return
	}

	if err := h.clientService.DeleteCalorie(c.Request.Context(), claim, entryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Plans ---

// ListAssignedPlans returns every plan assigned to the caller.
func (h *ClientHandler) ListAssignedPlans(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	plans, err := h.clientService.ListAssignedPlans(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// --- Photos ---

func (h *ClientHandler) RequestPhotoUpload(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	upload, err := h.mediaService.RequestPhotoUpload(c.Request.Context(), claim, req.FileName, req.ContentType, req.TakenAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}

func (h *ClientHandler) ListPhotos(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	photos, err := h.mediaService.ListPhotos(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

func (h *ClientHandler) DeletePhoto(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	if err := h.mediaService.DeletePhoto(c.Request.Context(), claim, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Data reset ---

// ResetData wipes everything the caller has recorded.
func (h *ClientHandler) ResetData(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	if err := h.clientService.ResetData(c.Request.Context(), claim); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
