package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/service"
)

// AdminHandler serves account administration and the trainer/user
// assignment graph.
type AdminHandler struct {
	accountService service.AccountService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountService service.AccountService) *AdminHandler {
	return &AdminHandler{accountService: accountService}
}

// --- DTOs ---

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type CreateAssignmentRequest struct {
	TrainerID int64 `json:"trainerId" binding:"required"`
	UserID    int64 `json:"userId" binding:"required"`
}

// --- Handlers ---

func (h *AdminHandler) ListAccounts(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), claim)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountsToResponse(accounts))
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	account, err := h.accountService.UpdateRole(c.Request.Context(), claim, accountID, domain.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapAccountToResponse(account))
}

func (h *AdminHandler) DeleteAccount(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid account id")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), claim, accountID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CreateAssignment(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.accountService.CreateAssignment(c.Request.Context(), claim, req.TrainerID, req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *AdminHandler) DeleteAssignment(c *gin.Context) {
	claim, err := getClaimFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	trainerID, err := strconv.ParseInt(c.Param("trainerId"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer id")
		return
	}
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	// Removing an edge that does not exist is a no-op, not an error.
	if _, err := h.accountService.DeleteAssignment(c.Request.Context(), claim, trainerID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
